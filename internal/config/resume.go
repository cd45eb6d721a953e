package config

// ResumeTarget selects the session a resumed run continues.
// Implementations: ResumeSession, ResumeLast.
type ResumeTarget interface {
	resumeTarget() // marker method
}

// ResumeSession resumes the session with the given id.
type ResumeSession struct {
	ID string
}

func (ResumeSession) resumeTarget() {}

// ResumeLast resumes the most recently used session.
// codex does not accept a positional prompt in this mode, so the prompt is
// written to the child's stdin instead.
type ResumeLast struct{}

func (ResumeLast) resumeTarget() {}

package models

// Draft is the transient, session-scoped staging area for the five-step
// registration wizard. Each step writes its own slice of fields and sets
// its completion flag; nothing reaches the users table until the final
// commit, so an abandoned Draft never leaves a partial account behind.
type Draft struct {
	Username     string
	PasswordHash string
	FullName     string
	Email        string
	Phone        string
	ProfilePhoto string
	Pets         []PetRecord

	Step1Done bool
	Step2Done bool
	Step3Done bool
	Step4Done bool
}

// StepComplete reports whether step n (1-4) has been completed.
// Steps outside that range are never complete.
func (d Draft) StepComplete(n int) bool {
	switch n {
	case 1:
		return d.Step1Done
	case 2:
		return d.Step2Done
	case 3:
		return d.Step3Done
	case 4:
		return d.Step4Done
	default:
		return false
	}
}

package models

// RoleType defines the user role type
type RoleType string

const (
	RoleLearner RoleType = "LEARNER"
	RoleTutor   RoleType = "TUTOR"
)

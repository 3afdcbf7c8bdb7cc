package services

// Services defined in this package:
// - AuthService: registration, login and token refresh
// - OfferingService: course offerings and recurrence expansion
// - EnrollmentService: the enrollment lifecycle and capacity gate
// - SessionService: targeted amendments to generated sessions

package errors

import "errors"

var (
	// ErrSchoolNotFound indicates that the specified school was not found
	ErrSchoolNotFound = errors.New("school not found")

	// ErrStudentNotFound indicates that the specified student was not found
	ErrStudentNotFound = errors.New("student not found")

	// ErrStaffNotFound indicates that the specified staff member was not found
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrClassNotFound indicates that the specified class was not found
	ErrClassNotFound = errors.New("class not found")

	// ErrSubjectNotFound indicates that the specified subject was not found
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrAdmissionNotFound indicates that the specified admission was not found
	ErrAdmissionNotFound = errors.New("admission not found")

	// ErrAdmissionAlreadyDecided indicates an approve/reject on a settled admission
	ErrAdmissionAlreadyDecided = errors.New("admission has already been decided")

	// ErrTicketNotFound indicates that the specified support ticket was not found
	ErrTicketNotFound = errors.New("support ticket not found")

	// ErrSubdomainTaken indicates the requested school subdomain is in use
	ErrSubdomainTaken = errors.New("subdomain is already taken")

	// ErrInvalidCredentials indicates a failed login attempt
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountInactive indicates a login against a deactivated staff account
	ErrAccountInactive = errors.New("account is inactive")
)

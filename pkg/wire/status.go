package wire

// Status represents a per-item outcome code carried in report elements.
type Status uint8

const (
	// StatusSuccess indicates the operation completed successfully.
	StatusSuccess Status = 0

	// StatusFailure indicates an unspecified failure in the handler.
	StatusFailure Status = 1

	// StatusUnsupportedEndpoint indicates the endpoint doesn't exist.
	StatusUnsupportedEndpoint Status = 2

	// StatusUnsupportedCluster indicates the cluster doesn't exist on the endpoint.
	StatusUnsupportedCluster Status = 3

	// StatusUnsupportedAttribute indicates the attribute doesn't exist.
	StatusUnsupportedAttribute Status = 4

	// StatusUnsupportedCommand indicates the command doesn't exist.
	StatusUnsupportedCommand Status = 5

	// StatusUnsupportedRead indicates an attempt to read a write-only attribute.
	StatusUnsupportedRead Status = 6

	// StatusUnsupportedWrite indicates an attempt to write a read-only attribute.
	StatusUnsupportedWrite Status = 7

	// StatusNotAuthorized indicates the subject lacks the required privilege.
	StatusNotAuthorized Status = 8

	// StatusInvalidParameter indicates a request parameter is malformed.
	StatusInvalidParameter Status = 9

	// StatusConstraintError indicates a value violates an attribute constraint.
	StatusConstraintError Status = 10

	// StatusBusy indicates the device cannot act now; try again later.
	StatusBusy Status = 11

	// StatusInvalidSubscription indicates an unknown subscription id.
	StatusInvalidSubscription Status = 12
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	case StatusUnsupportedEndpoint:
		return "UNSUPPORTED_ENDPOINT"
	case StatusUnsupportedCluster:
		return "UNSUPPORTED_CLUSTER"
	case StatusUnsupportedAttribute:
		return "UNSUPPORTED_ATTRIBUTE"
	case StatusUnsupportedCommand:
		return "UNSUPPORTED_COMMAND"
	case StatusUnsupportedRead:
		return "UNSUPPORTED_READ"
	case StatusUnsupportedWrite:
		return "UNSUPPORTED_WRITE"
	case StatusNotAuthorized:
		return "NOT_AUTHORIZED"
	case StatusInvalidParameter:
		return "INVALID_PARAMETER"
	case StatusConstraintError:
		return "CONSTRAINT_ERROR"
	case StatusBusy:
		return "BUSY"
	case StatusInvalidSubscription:
		return "INVALID_SUBSCRIPTION"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

// IsError returns true if the status indicates an error.
func (s Status) IsError() bool {
	return s != StatusSuccess
}

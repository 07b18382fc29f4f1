package constants

const (
	ErrMsgInvalidBody      = "Invalid request body"
	ErrMsgMissingCities    = "Both source and destination cities are required"
	ErrMsgDatasetMalformed = "Dataset failed validation"
	ErrMsgSolverFailure    = "Optimizer could not complete within resource bounds"
	ErrMsgNoFeasible       = "No feasible itinerary for the given constraints"
)

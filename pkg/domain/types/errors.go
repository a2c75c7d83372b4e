package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures across the engine. Config and validation
// errors reach the caller; collaborator errors are recovered at the call
// site and never abort an audit or questioning turn.
var (
	ErrTagConfig       = goerr.NewTag("config")
	ErrTagValidation   = goerr.NewTag("validation")
	ErrTagCollaborator = goerr.NewTag("collaborator")
)

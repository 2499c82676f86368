package mincut

import (
	"errors"

	"github.com/lintang-b-s/prmincut/pkg/util"
)

var (
	ErrInvariantViolation = util.ErrInvariantViolation
	ErrCallbackAborted    = errors.New("mincut: cut callback aborted the run")
	ErrOracleFailure      = errors.New("mincut: min s-t cut oracle failed")
)

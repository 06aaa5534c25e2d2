package driver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorStringIncludesDetail(t *testing.T) {
	e := CLIError{Code: ErrIO, Message: "cannot read file"}
	assert.Equal(t, "cannot read file", e.Error())

	e.Detail = "permission denied"
	assert.Equal(t, "cannot read file: permission denied", e.Error())
}

func TestWrapCarriesInnerErrorAsDetail(t *testing.T) {
	inner := errors.New("boom")
	err := wrap(ErrParseFailed, "failed to parse x.reso", inner)
	cliErr, ok := err.(CLIError)
	if !ok {
		t.Fatalf("expected CLIError, got %T", err)
	}
	assert.Equal(t, ErrParseFailed, cliErr.Code)
	assert.Equal(t, "boom", cliErr.Detail)
}

func TestCLIErrorJSONRoundTrips(t *testing.T) {
	e := CLIError{Code: ErrNoUnitsMatched, Message: "no units"}
	js := e.JSON()
	assert.Contains(t, js, `"code":"ERR_NO_UNITS_MATCHED"`)
	assert.Contains(t, js, `"message":"no units"`)
}

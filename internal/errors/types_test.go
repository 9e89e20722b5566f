package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentErrorIs(t *testing.T) {
	err := fmt.Errorf("generate: %w", NewComponentExistsError("src/components/Button"))

	assert.True(t, errors.Is(err, ErrComponentExists))
	assert.False(t, errors.Is(err, ErrWrite))
	assert.Equal(t, KindComponentExists, KindOf(err))
}

func TestComponentErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *ComponentError
		contains []string
	}{
		{
			name:     "config parse keeps path and cause",
			err:      NewConfigParseError("/home/u/.new-component-config.json", "invalid JSON", errors.New("unexpected EOF")),
			contains: []string{"[ERR_CONFIG_PARSE]", "/home/u/.new-component-config.json:", "invalid JSON", "unexpected EOF"},
		},
		{
			name:     "invalid name quotes the name",
			err:      NewInvalidNameError(".tsx", "name is empty"),
			contains: []string{"\".tsx\"", "name is empty"},
		},
		{
			name:     "template not found",
			err:      NewTemplateNotFoundError("templates/ts/weird.tsx", fs.ErrNotExist),
			contains: []string{"templates/ts/weird.tsx", "template not found", "file does not exist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fs.ErrPermission
	err := NewWriteError("src/components/Button/Button.jsx", cause)

	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.True(t, errors.Is(err, ErrWrite))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsUserFacing(NewFormattingError("x.js", "unbalanced")))
	assert.False(t, IsUserFacing(errors.New("plain")))
	assert.False(t, IsUserFacing(nil))

	assert.True(t, IsRecoverable(NewMissingParentError("src/components")))
	assert.False(t, IsRecoverable(NewComponentExistsError("src/components/X")))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

func TestWithHint(t *testing.T) {
	err := NewConfigParseError("cfg.json", "bad", nil).WithHint("fix it")
	assert.Equal(t, "fix it", err.Hint)
}

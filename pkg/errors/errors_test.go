package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeInvalidSource, "bad source %q", "x"),
			want: `INVALID_SOURCE: bad source "x"`,
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeNetwork, stderrors.New("connection refused"), "fetch failed"),
			want: "NETWORK_ERROR: fetch failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeViewerNotFound, "no such viewer")

	if !Is(err, ErrCodeViewerNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNetwork) {
		t.Error("Is should not match plain errors")
	}

	// Codes survive wrapping through the standard chain.
	wrapped := Wrap(ErrCodeInternal, err, "outer")
	if !Is(wrapped, ErrCodeInternal) {
		t.Error("Is should see the outermost code")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(ErrCodeDecode, cause, "decode header")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "slow")); got != ErrCodeTimeout {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeNetwork, stderrors.New("refused"), "could not reach image host")
	if got := UserMessage(err); got != "could not reach image host" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); !strings.Contains(got, "plain failure") {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestSafeExecute(t *testing.T) {
	renderErr := fmt.Errorf("template not found")

	tests := []struct {
		name      string
		fn        func() error
		wantErr   error
		wantPanic interface{}
	}{
		{
			name: "success",
			fn:   func() error { return nil },
		},
		{
			name:    "returned error passes through",
			fn:      func() error { return renderErr },
			wantErr: renderErr,
		},
		{
			name:      "string panic",
			fn:        func() error { panic("index out of range") },
			wantPanic: "index out of range",
		},
		{
			name:      "int panic",
			fn:        func() error { panic(42) },
			wantPanic: 42,
		},
		{
			name:      "struct panic",
			fn:        func() error { panic(struct{ Stage string }{"fit"}) },
			wantPanic: struct{ Stage string }{"fit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SafeExecute("render report", tt.fn)

			if tt.wantPanic == nil {
				if err != tt.wantErr {
					t.Fatalf("SafeExecute() = %v, want %v", err, tt.wantErr)
				}
				return
			}

			var panicErr *PanicError
			if !As(err, &panicErr) {
				t.Fatalf("expected *PanicError, got %T (%v)", err, err)
			}
			if panicErr.Operation != "render report" {
				t.Errorf("Operation = %q", panicErr.Operation)
			}
			if fmt.Sprint(panicErr.PanicValue) != fmt.Sprint(tt.wantPanic) {
				t.Errorf("PanicValue = %v, want %v", panicErr.PanicValue, tt.wantPanic)
			}
			if panicErr.StackTrace == "" {
				t.Error("expected a stack trace")
			}
		})
	}
}

func TestRecover_KeepsEarlierError(t *testing.T) {
	loadErr := NewInputError("housePrice.txt", 3, "abc", "not a number")

	fit := func() (err error) {
		defer Recover(&err, "fit")
		err = loadErr
		panic("nil design matrix")
	}

	err := fit()
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "panic in fit: nil design matrix") {
		t.Errorf("missing panic text: %s", msg)
	}
	if !strings.Contains(msg, "housePrice.txt:3") {
		t.Errorf("missing earlier error: %s", msg)
	}

	var inErr *InputError
	if !As(err, &inErr) {
		t.Error("earlier *InputError should stay reachable")
	}
}

func TestPanicError(t *testing.T) {
	p := NewPanicError("load data", "bad line")

	if got, want := p.Error(), "panic in load data: bad line"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if s := p.String(); !strings.Contains(s, "Stack trace:") || !strings.Contains(s, p.Error()) {
		t.Errorf("String() should carry the message and stack, got %q", s)
	}
	if p.Unwrap() != nil {
		t.Error("non-error panic value should not unwrap")
	}

	cause := fmt.Errorf("png encoder failed")
	if !Is(NewPanicError("WritePNG", cause), cause) {
		t.Error("error panic value should unwrap")
	}
}

func BenchmarkSafeExecute_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = SafeExecute("fit", func() error { return nil })
	}
}

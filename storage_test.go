package formstash_test

import (
	"errors"
	"testing"

	"github.com/tomasbasham/formstash"
)

func TestMemoryStorage(t *testing.T) {
	t.Parallel()

	var s formstash.MemoryStorage
	if _, ok := s.Get("missing"); ok {
		t.Fatal("expected missing key to be absent")
	}

	if err := s.Set("k", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := s.Get("k")
	if !ok || got != "" {
		t.Errorf("got %q, %v; want empty value present", got, ok)
	}
}

func TestMemoryStorage_Quota(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		quota   int
		writes  [][2]string
		wantErr bool
		want    map[string]string
	}{
		"unlimited": {
			quota:  0,
			writes: [][2]string{{"a", "0123456789"}, {"b", "0123456789"}},
			want:   map[string]string{"a": "0123456789", "b": "0123456789"},
		},
		"exactly at quota": {
			quota:  4,
			writes: [][2]string{{"a", "bcd"}},
			want:   map[string]string{"a": "bcd"},
		},
		"over quota keeps previous value": {
			quota:   4,
			writes:  [][2]string{{"a", "b"}, {"a", "bcde"}},
			wantErr: true,
			want:    map[string]string{"a": "b"},
		},
		"replacing frees the old value": {
			quota:  6,
			writes: [][2]string{{"a", "bcdef"}, {"a", "12345"}},
			want:   map[string]string{"a": "12345"},
		},
		"keys count toward quota": {
			quota:   5,
			writes:  [][2]string{{"a", "b"}, {"cc", "dd"}},
			wantErr: true,
			want:    map[string]string{"a": "b"},
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := formstash.NewMemoryStorage(tt.quota)
			var err error
			for _, w := range tt.writes {
				if err = s.Set(w[0], w[1]); err != nil {
					break
				}
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error: %v, got: %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, formstash.ErrQuotaExceeded) {
				t.Errorf("expected ErrQuotaExceeded, got: %v", err)
			}
			for k, v := range tt.want {
				if got, _ := s.Get(k); got != v {
					t.Errorf("%s: got %q, want %q", k, got, v)
				}
			}
			if s.Len() != len(tt.want) {
				t.Errorf("got %d keys, want %d", s.Len(), len(tt.want))
			}
		})
	}
}

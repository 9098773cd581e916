package time_test

import (
	"encoding/json"
	"testing"
	"time"

	timex "github.com/ferdiebergado/hireloop/internal/pkg/time"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"Minutes", `{"ttl":"15m"}`, 15 * time.Minute, false},
		{"Compound", `{"ttl":"1h30m"}`, 90 * time.Minute, false},
		{"Number is rejected", `{"ttl":900}`, 0, true},
		{"Invalid unit", `{"ttl":"15 minutes"}`, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got struct {
				TTL timex.Duration `json:"ttl"`
			}
			err := json.Unmarshal([]byte(tc.input), &got)
			if (err != nil) != tc.wantErr {
				t.Fatalf("json.Unmarshal(%s) error = %v, wantErr: %t", tc.input, err, tc.wantErr)
			}

			if got.TTL.Duration != tc.want {
				t.Errorf("TTL = %v, want: %v", got.TTL.Duration, tc.want)
			}
		})
	}
}

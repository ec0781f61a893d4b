package integrations

import (
	"encoding/json"
	"testing"
)

func TestArtistField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain string", `"Cher"`, "Cher"},
		{"nested name", `{"name":"Cher","mbid":"bfcc6d75"}`, "Cher"},
		{"text form", `{"#text":"Cher","mbid":""}`, "Cher"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var track lastFMTrack
			if err := json.Unmarshal([]byte(`{"name":"x","artist":`+tt.input+`}`), &track); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			shaped := shapeTrack(track, durationOmitted)
			if shaped.Artist != tt.want {
				t.Errorf("expected artist %q, got %q", tt.want, shaped.Artist)
			}
		})
	}
}

func TestOneOrMany(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"array", `[{"name":"a"},{"name":"b"}]`, []string{"a", "b"}},
		{"single object", `{"name":"a"}`, []string{"a"}},
		{"empty array", `[]`, []string{}},
		{"empty string", `""`, []string{}},
		{"null", `null`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp struct {
				Tag oneOrMany[lastFMTag] `json:"tag"`
			}
			if err := json.Unmarshal([]byte(`{"tag":`+tt.input+`}`), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(resp.Tag) != len(tt.want) {
				t.Fatalf("expected %d items, got %d", len(tt.want), len(resp.Tag))
			}
			for i, name := range tt.want {
				if resp.Tag[i].Name != name {
					t.Errorf("item %d: expected %q, got %q", i, name, resp.Tag[i].Name)
				}
			}
		})
	}
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		number  float64
		seconds float64
	}{
		{"string millis", `"239000"`, 239000, 239},
		{"number millis", `215500`, 215500, 215.5},
		{"empty string", `""`, 0, 0},
		{"zero", `"0"`, 0, 0},
		{"null", `null`, 0, 0},
		{"garbage", `"n/a"`, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexString
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := f.number(); got != tt.number {
				t.Errorf("number() = %v, want %v", got, tt.number)
			}
			if got := f.seconds(); got != tt.seconds {
				t.Errorf("seconds() = %v, want %v", got, tt.seconds)
			}
		})
	}
}

func TestShapeTrack_DurationModes(t *testing.T) {
	raw := lastFMTrack{Name: "x", Duration: "180000"}

	if got := shapeTrack(raw, durationOmitted).Duration; got != 0 {
		t.Errorf("omitted: expected 0, got %v", got)
	}
	if got := shapeTrack(raw, durationRaw).Duration; got != 180000 {
		t.Errorf("raw: expected 180000, got %v", got)
	}
}

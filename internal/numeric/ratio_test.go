package numeric

import (
	"encoding/json"
	"math"
	"testing"
)

func TestRatioOf_ZeroDenominator(t *testing.T) {
	if got := RatioOf(10, 0); !math.IsInf(float64(got), 1) {
		t.Fatalf("10/0: got %v, want +Inf", got)
	}
	if got := RatioOf(-7, 0); !math.IsInf(float64(got), -1) {
		t.Fatalf("-7/0: got %v, want -Inf", got)
	}
	// 0/0 定义为 0，而非 Infinity
	if got := RatioOf(0, 0); got != 0 {
		t.Fatalf("0/0: got %v, want 0", got)
	}
}

func TestPercentOf_Rounding(t *testing.T) {
	// 245.67 / 1245.89 × 100 = 19.7184... → 19.72
	if got := PercentOf(245.67, 1245.89); got != 19.72 {
		t.Fatalf("got %v, want 19.72", got)
	}
}

func TestZeroPercentOf(t *testing.T) {
	if got := ZeroPercentOf(5, 0); got != 0 {
		t.Fatalf("clicks/0 impressions: got %v, want 0", got)
	}
	if got := ZeroPercentOf(320, 12450); got != 2.57 {
		t.Fatalf("got %v, want 2.57", got)
	}
}

func TestRatio_NeverNaN(t *testing.T) {
	cases := [][2]float64{{0, 0}, {1, 0}, {-1, 0}, {0, 5}, {3.3, 7.7}}
	for _, c := range cases {
		for _, r := range []Ratio{RatioOf(c[0], c[1]), PercentOf(c[0], c[1]), ZeroPercentOf(c[0], c[1])} {
			if math.IsNaN(float64(r)) {
				t.Fatalf("NaN produced for %v/%v", c[0], c[1])
			}
		}
	}
}

func TestRatio_JSONRoundTrip(t *testing.T) {
	in := []Ratio{Ratio(math.Inf(1)), Ratio(math.Inf(-1)), 19.72, 0}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `["Infinity","-Infinity",19.72,0]`
	if string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}

	var out []Ratio
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("index %d: got %v, want %v", i, out[i], in[i])
		}
	}
}

func TestRatio_UnmarshalRejectsNonFinite(t *testing.T) {
	// 非有限值只承认 "Infinity"/"-Infinity" 两种写法，NaN 不得经反序列化重新进入
	for _, in := range []string{`"NaN"`, `"Inf"`, `"+Inf"`, `"-Inf"`} {
		var r Ratio
		if err := json.Unmarshal([]byte(in), &r); err == nil {
			t.Fatalf("%s should be rejected", in)
		}
	}
}

func TestRatio_String(t *testing.T) {
	if s := Ratio(math.Inf(1)).String(); s != "Infinity" {
		t.Fatalf("got %q, want Infinity", s)
	}
	if s := Ratio(19.7).String(); s != "19.70" {
		t.Fatalf("got %q, want 19.70", s)
	}
}

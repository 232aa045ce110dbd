package parser

import (
	"reflect"
	"testing"

	"github.com/insightdelivered/enbd-statement-parser/internal/models"
)

func TestReconstructLogicalLines(t *testing.T) {
	tests := []struct {
		name     string
		section  string
		expected []string
	}{
		{
			name: "single line transactions",
			section: `Transaction Date,Description,Date,Amount
        26/01/202526/01/2025CONNECTECH L.L.C DUBAI ARE              23.50
        05/01/202306/01/2023 Salary                      1000.00`,
			expected: []string{
				"26/01/202526/01/2025CONNECTECH L.L.C DUBAI ARE              23.50",
				"05/01/202306/01/2023 Salary                      1000.00",
			},
		},
		{
			name: "foreign currency entry spans three lines",
			section: `Transaction Date,Description,Date,Amount
        26/01/202526/01/2025CONNECTECH L.L.C DUBAI ARE              23.50
        26/01/202527/01/2025*WWW.PERPLEXITY.AI SAN FRANCISCO US 20.00 USD
        (1 AED = USD 0.26396)
        75.77
        26/01/202527/01/2025GOOD LIFE CAFE AND RES DUBAI ARE        73.00`,
			expected: []string{
				"26/01/202526/01/2025CONNECTECH L.L.C DUBAI ARE              23.50",
				"26/01/202527/01/2025*WWW.PERPLEXITY.AI SAN FRANCISCO US 20.00 USD (1 AED = USD 0.26396) 75.77",
				"26/01/202527/01/2025GOOD LIFE CAFE AND RES DUBAI ARE        73.00",
			},
		},
		{
			name: "foreign currency entry with comma amount",
			section: `26/01/202527/01/2025*STUBHUB INC 8667882482 USA 950.69 GBP
        (1 AED = GBP 0.21119)
        4,501.56`,
			expected: []string{
				"26/01/202527/01/2025*STUBHUB INC 8667882482 USA 950.69 GBP (1 AED = GBP 0.21119) 4,501.56",
			},
		},
		{
			name: "non date lines are skipped",
			section: `Header info
        01/01/202302/01/2023 Coffee Shop                  -25.50
        This line should be filtered out

        random text that doesn't match date format
        05/01/202306/01/2023 Salary                      1000.00`,
			expected: []string{
				"01/01/202302/01/2023 Coffee Shop                  -25.50",
				"05/01/202306/01/2023 Salary                      1000.00",
			},
		},
		{
			name: "unterminated accumulation is emitted",
			section: `01/01/202302/01/2023 Coffee Shop -25.50
        02/01/202303/01/2023 PENDING USD
        (1 AED = USD 0.27)`,
			expected: []string{
				"01/01/202302/01/2023 Coffee Shop -25.50",
				"02/01/202303/01/2023 PENDING USD (1 AED = USD 0.27)",
			},
		},
		{
			name:     "no transaction lines",
			section:  "Some random text without proper transaction markers",
			expected: []string{},
		},
		{
			name:     "empty",
			section:  "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconstructLogicalLines(tt.section)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestReconstruct_CRLF(t *testing.T) {
	got := ReconstructLogicalLines("01/01/202302/01/2023 A USD\r\n(1 AED = USD 0.27)\r\n3.70\r\n")
	want := []string{"01/01/202302/01/2023 A USD (1 AED = USD 0.27) 3.70"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReconstruct_DropUnterminated(t *testing.T) {
	section := "01/01/202302/01/2023 Coffee Shop -25.50\n02/01/202303/01/2023 PENDING USD\n(1 AED = USD 0.27)"
	logical, debug := reconstruct(section, Options{Unterminated: UnterminatedDrop})

	if len(logical) != 1 || logical[0].text != "01/01/202302/01/2023 Coffee Shop -25.50" {
		t.Fatalf("got %+v, want only the terminated line", logical)
	}
	for _, d := range debug[1:] {
		if d.Result != models.LineUnterminated {
			t.Errorf("line %d: got %q, want %q", d.LineNum, d.Result, models.LineUnterminated)
		}
	}
}

func TestReconstruct_AttachStray(t *testing.T) {
	section := `Transaction Date,Description,Date,Amount
01/01/202302/01/2023 Coffee Shop -25.50
REF 12345
Page 2 of 3
05/01/202306/01/2023 Salary 1000.00`

	logical, debug := reconstruct(section, Options{StrayLines: StrayAttach})
	if len(logical) != 2 {
		t.Fatalf("logical lines: got %d, want 2", len(logical))
	}
	if want := []string{"REF 12345", "Page 2 of 3"}; !reflect.DeepEqual(logical[0].stray, want) {
		t.Errorf("stray: got %q, want %q", logical[0].stray, want)
	}
	if len(logical[1].stray) != 0 {
		t.Errorf("second line should have no stray text, got %q", logical[1].stray)
	}

	wantResults := []string{
		models.LineStray,
		models.LineTransaction,
		models.LineAttached,
		models.LineAttached,
		models.LineTransaction,
	}
	for i, want := range wantResults {
		if debug[i].Result != want {
			t.Errorf("debug[%d].Result: got %q, want %q", i, debug[i].Result, want)
		}
	}
}

func TestReconstruct_DebugLines(t *testing.T) {
	section := `Transaction Date,Description,Date,Amount
26/01/202527/01/2025*WWW.PERPLEXITY.AI SAN FRANCISCO US 20.00 USD
(1 AED = USD 0.26396)
75.77`

	_, debug := reconstruct(section, Options{})
	want := []models.DebugLine{
		{LineNum: 1, Text: StartMarker, HasDate: false, Result: models.LineStray},
		{LineNum: 2, Text: "26/01/202527/01/2025*WWW.PERPLEXITY.AI SAN FRANCISCO US 20.00 USD", HasDate: true, Result: models.LineTransaction},
		{LineNum: 3, Text: "(1 AED = USD 0.26396)", HasDate: false, Result: models.LineContinuation},
		{LineNum: 4, Text: "75.77", HasDate: false, Result: models.LineContinuation},
	}
	if !reflect.DeepEqual(debug, want) {
		t.Errorf("got %+v, want %+v", debug, want)
	}
}

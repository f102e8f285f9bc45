package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOldReportTotals(t *testing.T) {
	r := OldReport{
		Prod: []OldPackage{{Name: "a"}, {Name: "b"}},
		Dev:  []OldPackage{{Name: "c"}, {Name: "d"}},
	}
	assert.Equal(t, "2 old dependencies, 2 old dev dependencies", r.Totals())
}

func TestOldReportTotalsSingular(t *testing.T) {
	r := OldReport{
		Prod: []OldPackage{{Name: "a"}},
	}
	assert.Equal(t, "1 old dependency, 0 old dev dependencies", r.Totals())
}

func TestOldReportTotalsProdOnly(t *testing.T) {
	r := OldReport{
		Prod:     []OldPackage{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		ProdOnly: true,
	}
	assert.Equal(t, "3 old production dependencies", r.Totals())
}

func TestDeprecatedReportTotals(t *testing.T) {
	r := DeprecatedReport{
		Prod: []DeprecatedPackage{{Name: "a"}},
		Dev:  []DeprecatedPackage{{Name: "b"}},
	}
	assert.Equal(t, "1 deprecated dependency, 1 deprecated dev dependency", r.Totals())
}

func TestDeprecatedReportTotalsProdOnly(t *testing.T) {
	r := DeprecatedReport{ProdOnly: true}
	assert.Equal(t, "0 deprecated production dependencies", r.Totals())
}

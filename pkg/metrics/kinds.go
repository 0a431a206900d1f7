package metrics

import (
	"fmt"
	"strings"
)

// Kind identifies one metric. The string value is the stable abbreviation
// used in snapshots, exports and rule definitions.
type Kind string

// Member metric kinds.
const (
	CYCLO       Kind = "CYCLO"
	CYCLOSwitch Kind = "CYCLO_SWITCH"
	MLOC        Kind = "MLOC"
	MELOC       Kind = "MELOC"
	NOP         Kind = "NOP"
	NOLV        Kind = "NOLV"
	NOTC        Kind = "NOTC"
	MNOL        Kind = "MNOL"
	MNOR        Kind = "MNOR"
	MNOC        Kind = "MNOC"
	NOMI        Kind = "NOMI"
	RFC         Kind = "RFC"
	MNOA        Kind = "MNOA"
	NONL        Kind = "NONL"
	NOSL        Kind = "NOSL"
	NOMO        Kind = "NOMO"
	NOPE        Kind = "NOPE"
	NOLE        Kind = "NOLE"
	MMNB        Kind = "MMNB"
	NOUW        Kind = "NOUW"
)

// Class metric kinds. RFC is shared with the member scope.
const (
	CLOC      Kind = "CLOC"
	CELOC     Kind = "CELOC"
	NMD       Kind = "NMD"
	NAD       Kind = "NAD"
	NMDNAD    Kind = "NMD_NAD"
	WMC       Kind = "WMC"
	WMCNoCase Kind = "WMC_NO_CASE"
	LCOM      Kind = "LCOM"
	LCOM3     Kind = "LCOM3"
	LCOM4     Kind = "LCOM4"
	TCC       Kind = "TCC"
	ATFD      Kind = "ATFD"
	ATFD10    Kind = "ATFD_10"
	CNOR      Kind = "CNOR"
	CNOL      Kind = "CNOL"
	CNOC      Kind = "CNOC"
	CNOA      Kind = "CNOA"
	NOPM      Kind = "NOPM"
	NOPF      Kind = "NOPF"
	CMNB      Kind = "CMNB"
	CBO       Kind = "CBO"
	DIT       Kind = "DIT"
	DCC       Kind = "DCC"
	NIC       Kind = "NIC"
	WOC       Kind = "WOC"
	NOPA      Kind = "NOPA"
	NOPP      Kind = "NOPP"
	NOPANOPP  Kind = "NOPA_NOPP"
	WMCNAMM   Kind = "WMCNAMM"
	BUR       Kind = "BUR"
	BOvR      Kind = "BOvR"
)

// Undefined is the sentinel stored for ratios whose denominator is zero
// (LCOM, TCC). It is a value, never an error.
const Undefined = -1.0

//nolint:gochecknoglobals // ordered, read-only catalogs.
var (
	memberKinds = []Kind{
		CYCLO, CYCLOSwitch, MLOC, MELOC, NOP, NOLV, NOTC, MNOL, MNOR, MNOC,
		NOMI, RFC, MNOA, NONL, NOSL, NOMO, NOPE, NOLE, MMNB, NOUW,
	}

	classKinds = []Kind{
		CLOC, CELOC, NMD, NAD, NMDNAD, WMC, WMCNoCase, LCOM, LCOM3, LCOM4, TCC,
		ATFD, ATFD10, CNOR, CNOL, CNOC, CNOA, NOPM, NOPF, CMNB, RFC, CBO, DIT,
		DCC, NIC, WOC, NOPA, NOPP, NOPANOPP, WMCNAMM, BUR, BOvR,
	}

	aliases = map[string]Kind{
		"LOC":  MLOC,
		"ELOC": MELOC,
		"NOL":  MNOL,
		"NOR":  MNOR,
		"NOC":  MNOC,
		"NOA":  MNOA,
	}
)

// MemberKinds returns the member metric kinds in canonical order.
func MemberKinds() []Kind {
	return append([]Kind(nil), memberKinds...)
}

// ClassKinds returns the class metric kinds in canonical order.
func ClassKinds() []Kind {
	return append([]Kind(nil), classKinds...)
}

// ParseKind resolves a metric name, case-insensitively, to its Kind.
// The short member names (LOC, ELOC, NOL, NOR, NOC, NOA) are accepted as aliases.
func ParseKind(name string) (Kind, error) {
	trimmed := strings.TrimSpace(name)

	for _, catalog := range [][]Kind{classKinds, memberKinds} {
		for _, kind := range catalog {
			if strings.EqualFold(string(kind), trimmed) {
				return kind, nil
			}
		}
	}

	if kind, ok := aliases[strings.ToUpper(trimmed)]; ok {
		return kind, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Package genome reads personal variant calls and reference sequence,
// producing the base-pair stream the lamp displays.
package genome

import "fmt"

// Base is a IUPAC nucleotide code.
type Base byte

const (
	BaseN Base = 'N' // any
	BaseA Base = 'A'
	BaseC Base = 'C'
	BaseT Base = 'T'
	BaseG Base = 'G'
	BaseX Base = 'X' // missing, pads the short side of an indel
	BaseR Base = 'R' // G/A
	BaseY Base = 'Y' // T/C
	BaseK Base = 'K' // G/T
	BaseM Base = 'M' // A/C
	BaseS Base = 'S' // G/C
	BaseW Base = 'W' // A/T
	BaseB Base = 'B' // G/T/C
	BaseD Base = 'D' // G/A/T
	BaseH Base = 'H' // A/C/T
	BaseV Base = 'V' // G/C/A
)

var validBases = map[Base]bool{
	BaseN: true, BaseA: true, BaseC: true, BaseT: true, BaseG: true,
	BaseR: true, BaseY: true, BaseK: true, BaseM: true, BaseS: true,
	BaseW: true, BaseB: true, BaseD: true, BaseH: true, BaseV: true,
}

var complement = map[Base]Base{
	BaseA: BaseT,
	BaseT: BaseA,
	BaseC: BaseG,
	BaseG: BaseC,
}

// ParseBase converts one sequence character to a Base. Lowercase
// (soft-masked) characters are accepted.
func ParseBase(c byte) (Base, error) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	b := Base(c)
	if !validBases[b] {
		return BaseN, fmt.Errorf("invalid base %q", c)
	}
	return b, nil
}

// IsValidBase reports whether c is a known sequence character.
func IsValidBase(c byte) bool {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return validBases[Base(c)]
}

// Complement returns the Watson-Crick partner of b. Ambiguity codes and
// padding have no complement; they report false.
func (b Base) Complement() (Base, bool) {
	c, ok := complement[b]
	return c, ok
}

func (b Base) String() string {
	return string(rune(b))
}

// ParseBases converts an allele string (e.g. the REF or ALT column of a
// VCF) to bases.
func ParseBases(s string) ([]Base, error) {
	if s == "" {
		return nil, fmt.Errorf("empty allele")
	}
	bases := make([]Base, len(s))
	for i := 0; i < len(s); i++ {
		b, err := ParseBase(s[i])
		if err != nil {
			return nil, fmt.Errorf("allele %q: %w", s, err)
		}
		bases[i] = b
	}
	return bases, nil
}

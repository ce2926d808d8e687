// Package flags resolves a 24-bit ICAO transponder address to the country
// the address block is allocated to, and from there to a flag asset path.
// The allocation table follows ICAO Annex 10, Volume III, covering the
// blocks commonly seen in live traffic; addresses outside every known
// block resolve to nothing rather than an error.
package flags

import (
	"sort"
	"strconv"
	"strings"
)

// allocation is one contiguous ICAO address block assigned to a country.
type allocation struct {
	low  uint32
	high uint32
	// code is the ISO 3166-1 alpha-2 country code, lower case
	code string
}

// allocations is sorted by low at init for the binary search in Lookup.
var allocations = []allocation{
	{0x008000, 0x00FFFF, "za"}, // South Africa
	{0x010000, 0x017FFF, "eg"}, // Egypt
	{0x020000, 0x027FFF, "ma"}, // Morocco
	{0x0A0000, 0x0A7FFF, "dz"}, // Algeria
	{0x300000, 0x33FFFF, "it"}, // Italy
	{0x340000, 0x37FFFF, "es"}, // Spain
	{0x380000, 0x3BFFFF, "fr"}, // France
	{0x3C0000, 0x3FFFFF, "de"}, // Germany
	{0x400000, 0x43FFFF, "gb"}, // United Kingdom
	{0x440000, 0x447FFF, "at"}, // Austria
	{0x448000, 0x44FFFF, "be"}, // Belgium
	{0x450000, 0x457FFF, "bg"}, // Bulgaria
	{0x458000, 0x45FFFF, "dk"}, // Denmark
	{0x460000, 0x467FFF, "fi"}, // Finland
	{0x468000, 0x46FFFF, "gr"}, // Greece
	{0x470000, 0x477FFF, "hu"}, // Hungary
	{0x478000, 0x47FFFF, "no"}, // Norway
	{0x480000, 0x487FFF, "nl"}, // Netherlands
	{0x488000, 0x48FFFF, "pl"}, // Poland
	{0x490000, 0x497FFF, "pt"}, // Portugal
	{0x498000, 0x49FFFF, "cz"}, // Czechia
	{0x4A0000, 0x4A7FFF, "ro"}, // Romania
	{0x4A8000, 0x4AFFFF, "se"}, // Sweden
	{0x4B0000, 0x4B7FFF, "ch"}, // Switzerland
	{0x4B8000, 0x4BFFFF, "tr"}, // Turkey
	{0x4C0000, 0x4C7FFF, "rs"}, // Serbia
	{0x4C8000, 0x4C83FF, "cy"}, // Cyprus
	{0x4CA000, 0x4CAFFF, "ie"}, // Ireland
	{0x4CC000, 0x4CCFFF, "is"}, // Iceland
	{0x4D0000, 0x4D03FF, "lu"}, // Luxembourg
	{0x4D2000, 0x4D23FF, "mt"}, // Malta
	{0x500000, 0x5003FF, "sm"}, // San Marino
	{0x501000, 0x5013FF, "al"}, // Albania
	{0x502C00, 0x502FFF, "hr"}, // Croatia
	{0x503C00, 0x503FFF, "lv"}, // Latvia
	{0x504C00, 0x504FFF, "lt"}, // Lithuania
	{0x505C00, 0x505FFF, "md"}, // Moldova
	{0x506C00, 0x506FFF, "sk"}, // Slovakia
	{0x507C00, 0x507FFF, "si"}, // Slovenia
	{0x508000, 0x50FFFF, "ua"}, // Ukraine
	{0x510000, 0x5103FF, "by"}, // Belarus
	{0x511000, 0x5113FF, "ee"}, // Estonia
	{0x680000, 0x6BFFFF, "in"}, // India
	{0x700000, 0x700FFF, "af"}, // Afghanistan
	{0x718000, 0x71FFFF, "kr"}, // South Korea
	{0x710000, 0x717FFF, "sa"}, // Saudi Arabia
	{0x740000, 0x747FFF, "jo"}, // Jordan
	{0x750000, 0x757FFF, "my"}, // Malaysia
	{0x760000, 0x767FFF, "pk"}, // Pakistan
	{0x768000, 0x76FFFF, "sg"}, // Singapore
	{0x770000, 0x777FFF, "lk"}, // Sri Lanka
	{0x780000, 0x7BFFFF, "cn"}, // China
	{0x7C0000, 0x7FFFFF, "au"}, // Australia
	{0x840000, 0x87FFFF, "jp"}, // Japan
	{0x880000, 0x887FFF, "th"}, // Thailand
	{0x8A0000, 0x8A7FFF, "id"}, // Indonesia
	{0xA00000, 0xAFFFFF, "us"}, // United States
	{0xC00000, 0xC3FFFF, "ca"}, // Canada
	{0xC80000, 0xC87FFF, "nz"}, // New Zealand
	{0xE00000, 0xE3FFFF, "ar"}, // Argentina
	{0xE40000, 0xE7FFFF, "br"}, // Brazil
	{0xE80000, 0xE80FFF, "cl"}, // Chile
	{0x0D0000, 0x0D7FFF, "mx"}, // Mexico
	{0x100000, 0x1FFFFF, "ru"}, // Russia
	{0x896000, 0x896FFF, "ae"}, // United Arab Emirates
	{0x06A000, 0x06A3FF, "qa"}, // Qatar
	{0x738000, 0x73FFFF, "il"}, // Israel
	{0x600000, 0x6003FF, "am"}, // Armenia
	{0x4D4000, 0x4D43FF, "mc"}, // Monaco
}

func init() {
	sort.Slice(allocations, func(i, j int) bool {
		return allocations[i].low < allocations[j].low
	})
}

// Lookup resolves an ICAO hex address (e.g. "484aa3") to the allocated
// country's ISO code. Returns ok=false for unparsable addresses and for
// addresses outside every known allocation block.
func Lookup(hex string) (code string, ok bool) {
	addr, err := strconv.ParseUint(strings.TrimSpace(hex), 16, 32)
	if err != nil || addr > 0xFFFFFF {
		return "", false
	}

	a := uint32(addr)
	// Find the last block starting at or below the address.
	i := sort.Search(len(allocations), func(i int) bool {
		return allocations[i].low > a
	}) - 1
	if i < 0 {
		return "", false
	}
	if a >= allocations[i].low && a <= allocations[i].high {
		return allocations[i].code, true
	}
	return "", false
}

// AssetPath resolves an ICAO hex address to the flag image asset served
// alongside the card. Returns ok=false when the country is unresolvable.
func AssetPath(hex string) (string, bool) {
	code, ok := Lookup(hex)
	if !ok {
		return "", false
	}
	return "flags/" + code + ".svg", true
}

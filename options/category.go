package options

import (
	"fmt"
	"strings"
)

// CategoryEnum is a bit set of primitive conversion families the mapper may apply implicitly.
type CategoryEnum int

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int, uint, float without precision loss
	CategoryUnsafeNumber                          // int, uint, float with precision loss
	CategoryTextNumber                            // int, uint, float <-> string: textual number representation
	CategoryNumericBool                           // int <-> bool: 0, 1 representation of boolean values
	CategoryTextualBool                           // string <-> bool: yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                              // string(RFC3339Nano) <-> time.Time: textual date and time representation
	CategoryTimestamp                             // int(Unix seconds) <-> time.Time: Unix timestamp representation
	CategoryDuration                              // string(2h45m) <-> time.Duration: textual duration representation
	CategoryNanoseconds                           // int(nanoseconds) <-> time.Duration: numerical (integer) duration representation
	CategorySeconds                               // float(seconds) <-> time.Duration: numerical (floating-point) duration representation
	CategoryEnumString                            // string <-> enum: textual representation of an enum type (uses parse/isValid/string methods)
	CategorySafeArray                             // slice <-> array: slice perfectly fits into an array
	CategoryUnsafeArray                           // slice <-> array: slice does not fit into an array, slices are cut, arrays leaved with zero values

	CategoryAll  CategoryEnum = (1 << iota) - 1 //all categories combined
	CategoryNone CategoryEnum = 0               // no categories selected

	// CategoryDefault is the lossless subset enabled unless configured otherwise.
	CategoryDefault = CategorySafeNumber | CategoryTextNumber | CategoryTextualBool |
		CategoryDatetime | CategoryDuration | CategoryEnumString | CategorySafeArray
)

var categoryNames = []struct {
	name string
	cat  CategoryEnum
}{
	{"safe_number", CategorySafeNumber},
	{"unsafe_number", CategoryUnsafeNumber},
	{"text_number", CategoryTextNumber},
	{"numeric_bool", CategoryNumericBool},
	{"textual_bool", CategoryTextualBool},
	{"datetime", CategoryDatetime},
	{"timestamp", CategoryTimestamp},
	{"duration", CategoryDuration},
	{"nanoseconds", CategoryNanoseconds},
	{"seconds", CategorySeconds},
	{"enum_string", CategoryEnumString},
	{"safe_array", CategorySafeArray},
	{"unsafe_array", CategoryUnsafeArray},
}

// Has reports whether every bit of other is enabled.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return other != CategoryNone && c&other == other
}

// String lists the enabled categories joined by '|'.
func (c CategoryEnum) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryAll:
		return "all"
	default:
	}

	var parts []string
	for _, n := range categoryNames {
		if c&n.cat != 0 {
			parts = append(parts, n.name)
		}
	}

	return strings.Join(parts, "|")
}

// ParseCategories folds category names ("safe_number", "all", "default", "none") into one set.
func ParseCategories(names ...string) (CategoryEnum, error) {
	var out CategoryEnum

	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch name {
		case "all":
			out |= CategoryAll
			continue
		case "default":
			out |= CategoryDefault
			continue
		case "none", "":
			continue
		default:
		}

		found := false
		for _, n := range categoryNames {
			if n.name == name {
				out |= n.cat
				found = true

				break
			}
		}

		if !found {
			return CategoryNone, fmt.Errorf("unknown conversion category %q", raw)
		}
	}

	return out, nil
}

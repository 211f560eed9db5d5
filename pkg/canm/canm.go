// Package canm implements the camera animation container (CANM).
//
// A CANM file animates an 8-channel camera rig: three position axes, three
// look-target axes, roll and field of view. Each channel is stored either as
// baked per-frame values or as keyed spline control points. The package
// decodes a file losslessly into an Animation and encodes an Animation back
// into the exact byte layout the engine reads.
package canm

// CANM global constants must never change.
const (
	// MagicANDO is the file magic shared by every known family.
	// It is stored little-endian and reads as "ANDO" on disk.
	MagicANDO uint32 = 0x4F444E41

	// HeaderSize is the fixed size of the file header.
	HeaderSize = 0x20

	// Data-region offsets written on encode. They equal the size of the
	// eight track records: two i32 fields per track when baked, three when
	// keyed.
	DataOffsetBaked uint32 = 0x40
	DataOffsetKeyed uint32 = 0x60
)

// footer trails every encoded file. Its meaning is unknown; the engine
// expects it verbatim.
var footer = [12]byte{0x3D, 0xCC, 0xCC, 0xCD, 0x4E, 0x6E, 0x6B, 0x28, 0xFF, 0xFF, 0xFF, 0xFF}

// Footer returns a copy of the trailing bytes appended on encode.
func Footer() []byte {
	out := make([]byte, len(footer))
	copy(out, footer[:])
	return out
}

// Family identifies a container family. Families share the wire layout and
// differ only in their constants.
type Family struct {
	Name  string
	Magic uint32
}

var (
	// FamilyCANM is the container used by stage camera animations (.canm).
	FamilyCANM = Family{Name: "canm", Magic: MagicANDO}
	// FamilyCAMN is the container used by cutscene cameras (.camn).
	FamilyCAMN = Family{Name: "camn", Magic: MagicANDO}
)

// Families lists the known container families.
func Families() []Family {
	return []Family{FamilyCANM, FamilyCAMN}
}

// LookupFamily returns the family with the given name.
func LookupFamily(name string) (Family, bool) {
	for _, f := range Families() {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}

package domain

// Location es dónde queda un usuario respecto a los dos canales que seguimos.
type Location int

const (
	LocationNone Location = iota
	LocationCompanion
	LocationRestricted
	LocationOther
)

func (l Location) String() string {
	switch l {
	case LocationCompanion:
		return "companion"
	case LocationRestricted:
		return "restricted"
	case LocationOther:
		return "other"
	default:
		return "none"
	}
}

// Tracked: companion o restricted.
func (l Location) Tracked() bool {
	return l == LocationCompanion || l == LocationRestricted
}

// Locate clasifica un channel ID ("" = sin canal).
func Locate(channelID, companionID, restrictedID string) Location {
	switch {
	case channelID == "":
		return LocationNone
	case channelID == companionID:
		return LocationCompanion
	case channelID == restrictedID:
		return LocationRestricted
	default:
		return LocationOther
	}
}

// VoiceUpdate es una transición de presencia (antes → después) de un usuario.
// Cualquier campo puede venir vacío: el gateway no garantiza nada.
type VoiceUpdate struct {
	GuildID     string
	UserID      string
	DisplayName string
	HasMember   bool

	// BeforeChannelID vacío = no había estado previo o no estaba en voz.
	BeforeChannelID string
	ChannelID       string
	SelfStream      bool
}

// IconImage es el contenido binario que se sube como ícono del guild.
type IconImage struct {
	Name string
	Data []byte
}

package domain

// KeySignatures is the fixed set a room's key must come from.
var KeySignatures = []string{
	"C Major", "G Major", "D Major", "A Major", "E Major", "B Major", "F# Major",
	"C# Major", "F Major", "Bb Major", "Eb Major", "Ab Major", "Db Major", "Gb Major",
	"A Minor", "E Minor", "B Minor", "F# Minor", "C# Minor", "G# Minor", "D# Minor",
	"A# Minor", "D Minor", "G Minor", "C Minor", "F Minor", "Bb Minor", "Eb Minor",
}

func IsValidKeySignature(key string) bool {
	for _, k := range KeySignatures {
		if k == key {
			return true
		}
	}

	return false
}

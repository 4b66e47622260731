package monobank

// MatchCardMask reports whether a full card number matches a masked card
// pattern of the same length ("400012******9010"). A '*' position matches
// any digit; every other position must match exactly. There is no prefix or
// partial-length matching.
func MatchCardMask(cardNumber, cardMask string) bool {
	if len(cardNumber) != len(cardMask) {
		return false
	}

	for i := 0; i < len(cardMask); i++ {
		if cardMask[i] == '*' {
			continue
		}
		if cardNumber[i] != cardMask[i] {
			return false
		}
	}

	return true
}

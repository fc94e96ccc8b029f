package quote

import "github.com/jcpvanhooren/pricesync/internal/model"

// Symbol derives the quote source symbol for an instrument. Currency
// instruments are quoted as a conversion pair against the book base
// currency; everything else trades under its own mnemonic.
func Symbol(inst model.Instrument, baseCurrency string) string {
	if inst.IsCurrency() {
		return inst.Mnemonic + baseCurrency + "=X"
	}
	return inst.Mnemonic
}

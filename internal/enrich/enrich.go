package enrich

import (
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcpvanhooren/pricesync/internal/model"
)

// Provenance markers stored with every record, matching the GnuCash
// prices table conventions.
const (
	SourceTag = "user:price"
	PriceType = "last"
)

// Rounding precision by instrument class. Currency pairs need more
// precision than exchange-traded securities.
const (
	currencyDecimals = 5
	securityDecimals = 2
)

// Records builds one PriceRecord per quote row for the given instrument.
//
// An instrument whose mnemonic equals the base currency yields no records:
// a 1:1 series against itself is degenerate, not an error. Closes are
// rounded half-up to the class precision, and the integer ratio
// ValueNum/ValueDenom reproduces the rounded close exactly within that
// precision.
func Records(inst model.Instrument, baseCurrency string, rows []model.QuoteRow) []model.PriceRecord {
	if len(rows) == 0 || inst.Mnemonic == baseCurrency {
		return nil
	}

	places := int32(securityDecimals)
	if inst.IsCurrency() {
		places = currencyDecimals
	}
	denom := decimal.NewFromInt(inst.ValueDenom)

	records := make([]model.PriceRecord, 0, len(rows))
	for _, row := range rows {
		close := decimal.NewFromFloat(row.Close).Round(places)
		valueNum := close.Mul(denom).Round(0).IntPart()

		records = append(records, model.PriceRecord{
			RowID:         newGUID(),
			Date:          row.Date,
			CurrencyCode:  baseCurrency,
			Close:         close,
			Symbol:        inst.Mnemonic,
			FullName:      inst.FullName,
			Namespace:     inst.Namespace,
			CommodityGUID: inst.GUID,
			CurrencyGUID:  inst.CurrencyGUID,
			Source:        SourceTag,
			Type:          PriceType,
			ValueNum:      valueNum,
			ValueDenom:    inst.ValueDenom,
		})
	}

	return records
}

// newGUID returns a fresh 32-char hex guid. Uniqueness rests on the
// underlying random UUID, never on record content.
func newGUID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

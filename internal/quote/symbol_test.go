package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcpvanhooren/pricesync/internal/model"
)

func TestSymbol(t *testing.T) {
	tests := []struct {
		name string
		inst model.Instrument
		want string
	}{
		{
			name: "currency maps to conversion pair",
			inst: model.Instrument{Namespace: model.NamespaceCurrency, Mnemonic: "USD"},
			want: "USDEUR=X",
		},
		{
			name: "security uses mnemonic directly",
			inst: model.Instrument{Namespace: "AMEX", Mnemonic: "VWRL.AS"},
			want: "VWRL.AS",
		},
		{
			name: "fund uses mnemonic directly",
			inst: model.Instrument{Namespace: "FUND", Mnemonic: "0P0000TDSH.F"},
			want: "0P0000TDSH.F",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Symbol(tt.inst, "EUR"))
		})
	}
}

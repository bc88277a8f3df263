package http

import (
	"testing"

	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceToCents(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr error
	}{
		{name: "integer rubles", in: "600", want: 60000},
		{name: "rubles and kopecks", in: "599.99", want: 59999},
		{name: "single decimal place", in: "10.5", want: 1050},
		{name: "zero", in: "0", want: 0},
		{name: "empty", in: "", wantErr: e.ErrInvalidPrice},
		{name: "whitespace", in: "   ", wantErr: e.ErrInvalidPrice},
		{name: "not a number", in: "abc", wantErr: e.ErrInvalidPrice},
		{name: "negative", in: "-1", wantErr: e.ErrInvalidPrice},
		{name: "too many decimal places", in: "1.999", wantErr: e.ErrPricePrecision},
		{name: "absurdly large", in: "99999999999", wantErr: e.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePriceToCents(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCentsToPrice(t *testing.T) {
	assert.Equal(t, "59.99", centsToPrice(5999))
	assert.Equal(t, "600.00", centsToPrice(60000))
	assert.Equal(t, "0.00", centsToPrice(0))
	assert.Equal(t, "0.05", centsToPrice(5))
}

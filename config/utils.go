package config

import (
	"errors"
	"fmt"
	"math/big"
)

var ErrInvalidWeiAmount = errors.New("invalid wei amount")

// DSN returns the lib/pq connection string for the configured database.
func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=%s", p.User, p.Password, p.Name, p.Host, p.Port, p.SslMode)
}

// ParseWei parses a decimal wei amount. Negative values are rejected.
func ParseWei(amount string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return nil, errors.Join(ErrInvalidWeiAmount, fmt.Errorf("amount: %q", amount))
	}

	if value.Sign() < 0 {
		return nil, errors.Join(ErrInvalidWeiAmount, fmt.Errorf("amount must not be negative: %s", amount))
	}

	return value, nil
}

func (d *DripSettings) AmountWei() (*big.Int, error) {
	return ParseWei(d.Amount)
}

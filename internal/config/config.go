// Package config loads shop configuration from YAML, with defaults
// matching the original store setup.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "1h" or "30s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler via time.ParseDuration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// PaymentMethod describes one way to pay at checkout.
type PaymentMethod struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// Delivery holds the delivery estimate parameters.
type Delivery struct {
	StandardDays int   `yaml:"standardDays"`
	ExpressDays  int   `yaml:"expressDays"`
	ExpressFee   int64 `yaml:"expressFee"`
}

// Admin holds the demo back-office credential and session window.
// This is display-tier configuration, not a security mechanism.
type Admin struct {
	Username       string   `yaml:"username"`
	Password       string   `yaml:"password"`
	SessionTimeout Duration `yaml:"sessionTimeout"`
}

// Config is the full shop configuration.
type Config struct {
	SiteName string `yaml:"siteName"`

	Currency              string  `yaml:"currency"`
	CurrencySymbol        string  `yaml:"currencySymbol"`
	TaxRate               float64 `yaml:"taxRate"`
	ShippingFee           int64   `yaml:"shippingFee"`
	FreeShippingThreshold int64   `yaml:"freeShippingThreshold"`

	PaymentMethods []PaymentMethod `yaml:"paymentMethods"`
	Delivery       Delivery        `yaml:"delivery"`
	Admin          Admin           `yaml:"admin"`

	// NotificationDuration is how long a storefront notification stays
	// visible before clients dismiss it.
	NotificationDuration Duration `yaml:"notificationDuration"`

	LowStockThreshold int      `yaml:"lowStockThreshold"`
	JitterInterval    Duration `yaml:"jitterInterval"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		SiteName:              "LAMITI SHOP",
		Currency:              "XAF",
		CurrencySymbol:        "FCFA",
		TaxRate:               0.18,
		ShippingFee:           0,
		FreeShippingThreshold: 50000,
		PaymentMethods: []PaymentMethod{
			{ID: "card", Name: "Carte bancaire", Description: "Paiement sécurisé par carte bancaire"},
			{ID: "mobile", Name: "Paiement mobile", Description: "Paiement par Orange Money, MTN Money"},
		},
		Delivery: Delivery{
			StandardDays: 3,
			ExpressDays:  1,
			ExpressFee:   5000,
		},
		Admin: Admin{
			Username:       "admin",
			Password:       "lamiti2024",
			SessionTimeout: Duration(time.Hour),
		},
		NotificationDuration: Duration(3 * time.Second),
		LowStockThreshold:    5,
		JitterInterval:       Duration(30 * time.Second),
	}
}

// Load reads a YAML file over the defaults. A missing path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

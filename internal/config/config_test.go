package config

import "testing"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MINTER_PRINCIPAL", "SP000MINTER")
	t.Setenv("BURN_SINK_PRINCIPAL", "SP000BURNSINK")
	t.Setenv("FEE_RECIPIENT_PRINCIPAL", "SP000FEEPOOL")
	t.Setenv("APP_ENV", "development")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.TokenName != "sBurn" || cfg.TokenSymbol != "SBRN" || cfg.Decimals != 8 {
		t.Fatalf("unexpected token defaults: %+v", cfg)
	}
	if cfg.BurnRateBps != 15 || cfg.FeeRateBps != 10 || cfg.MinTransfer != 1_000 {
		t.Fatalf("unexpected rate defaults: %+v", cfg)
	}
	if cfg.CheckOrder != "min-first" || cfg.AllowSelfTransfer {
		t.Fatalf("unexpected policy defaults: %+v", cfg)
	}
	if !cfg.IsDev() {
		t.Fatal("development env should report IsDev")
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("address %q", cfg.Address())
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("BURN_RATE_BPS", "25")
	t.Setenv("FEE_RATE_BPS", "5")
	t.Setenv("MIN_TRANSFER_AMOUNT", "5000")
	t.Setenv("MAX_MINT_AMOUNT", "1000000000")
	t.Setenv("ALLOW_SELF_TRANSFER", "true")
	t.Setenv("TRANSFER_CHECK_ORDER", "balance-first")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BurnRateBps != 25 || cfg.FeeRateBps != 5 || cfg.MinTransfer != 5_000 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.MaxMint != 1_000_000_000 || !cfg.AllowSelfTransfer || cfg.CheckOrder != "balance-first" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.ShutdownPeriod.Seconds() != 5 {
		t.Fatalf("shutdown period %v", cfg.ShutdownPeriod)
	}
}

func TestLoadRequiresPrincipals(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("MINTER_PRINCIPAL", "")
	t.Setenv("BURN_SINK_PRINCIPAL", "")
	t.Setenv("FEE_RECIPIENT_PRINCIPAL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without principal configuration")
	}
}

func TestLoadRequiresAuthSecretOutsideDev(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without AUTH_SECRET in production")
	}

	t.Setenv("AUTH_SECRET", "super-secret-signing-key")
	if _, err := Load(); err != nil {
		t.Fatalf("load with secret: %v", err)
	}
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	setRequired(t)
	t.Setenv("BURN_RATE_BPS", "fifteen")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric BURN_RATE_BPS")
	}
}

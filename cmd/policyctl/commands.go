package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/mapping"
	"github.com/chris/wallet-transfer-policy/pkg/middleware"
	"github.com/chris/wallet-transfer-policy/pkg/oracle"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/holiman/uint256"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// newCache opens the price cache the commands operate on. Tests swap it.
var newCache = func(addr, password string, db int, key string) oracle.Cache {
	return oracle.NewRedisCache(oracle.NewRedisClient(addr, password, db), key)
}

func newRootCmd() *cobra.Command {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "policyctl",
		Short:         "Operator tooling for the wallet transfer policy service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newPendingIDCmd(), newRelayTokenCmd(), newPricesCmd())
	return root
}

func newPendingIDCmd() *cobra.Command {
	var token, to, amount, data string
	var ref uint64
	cmd := &cobra.Command{
		Use:   "pending-id",
		Short: "Compute the id of a pending transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenAddr, err := mapping.ParseAddress("token", token)
			if err != nil {
				return err
			}
			target, err := mapping.ParseAddress("to", to)
			if err != nil {
				return err
			}
			value, err := mapping.ParseAmount("amount", amount)
			if err != nil {
				return err
			}
			var payload []byte
			if data != "" {
				if payload, err = mapping.ParseData("data", &data); err != nil {
					return err
				}
			}
			id := pending.ID(pending.Request{
				Kind:        pending.KindTransfer,
				Token:       tokenAddr,
				Target:      target,
				Amount:      value,
				Data:        payload,
				CreationRef: ref,
			})
			fmt.Fprintln(cmd.OutOrStdout(), id.Hex())
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "token address")
	cmd.Flags().StringVar(&to, "to", "", "target address")
	cmd.Flags().StringVar(&amount, "amount", "0", "amount in base units")
	cmd.Flags().StringVar(&data, "data", "", "hex call data")
	cmd.Flags().Uint64Var(&ref, "ref", 0, "creation ref")
	_ = cmd.MarkFlagRequired("token")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("ref")
	return cmd
}

func newRelayTokenCmd() *cobra.Command {
	var caller, secret, issuer string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "relay-token",
		Short: "Sign a relay token asserting a caller address",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := mapping.ParseAddress("caller", caller)
			if err != nil {
				return err
			}
			if secret == "" {
				return fmt.Errorf("--secret or RELAY_JWT_SECRET required")
			}
			v := &middleware.RelayValidator{Secret: []byte(secret), Issuer: issuer}
			token, err := v.Sign(addr, jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&caller, "caller", "", "caller address")
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("RELAY_JWT_SECRET"), "HMAC secret")
	cmd.Flags().StringVar(&issuer, "issuer", os.Getenv("RELAY_JWT_ISSUER"), "token issuer")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("caller")
	return cmd
}

func newPricesCmd() *cobra.Command {
	var addr, password, key string
	var db int
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Read and write the token price cache",
	}
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cmd.PersistentFlags().StringVar(&addr, "redis-addr", envOr("REDIS_ADDR", "localhost:6379"), "redis address")
	cmd.PersistentFlags().StringVar(&password, "redis-password", os.Getenv("REDIS_PASSWORD"), "redis password")
	cmd.PersistentFlags().IntVar(&db, "redis-db", redisDB, "redis database")
	cmd.PersistentFlags().StringVar(&key, "key", envOr("PRICE_CACHE_KEY", "token-prices"), "price hash key")

	cache := func() oracle.Cache { return newCache(addr, password, db, key) }

	get := &cobra.Command{
		Use:   "get TOKEN...",
		Short: "Print cached prices, zero when unset",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := mapping.ParseAddresses("token", args)
			if err != nil {
				return err
			}
			prices, err := cache().PriceBatch(cmd.Context(), tokens)
			if err != nil {
				return err
			}
			for i, token := range tokens {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", token.Hex(), prices[i].Dec())
			}
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set TOKEN PRICE [TOKEN PRICE]...",
		Short: "Set prices, scaled by 1e18 per native unit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expected TOKEN PRICE pairs, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var tokens []common.Address
			var prices []*uint256.Int
			for i := 0; i < len(args); i += 2 {
				token, err := mapping.ParseAddress("token", args[i])
				if err != nil {
					return err
				}
				price, err := mapping.ParseAmount("price", args[i+1])
				if err != nil {
					return err
				}
				tokens = append(tokens, token)
				prices = append(prices, price)
			}
			return cache().SetPrices(cmd.Context(), tokens, prices)
		},
	}

	var amount string
	value := &cobra.Command{
		Use:   "ether-value TOKEN",
		Short: "Convert an amount of token into native units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := mapping.ParseAddress("token", args[0])
			if err != nil {
				return err
			}
			n, err := mapping.ParseAmount("amount", amount)
			if err != nil {
				return err
			}
			v, err := oracle.EtherValue(cmd.Context(), cache(), token, n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.Dec())
			return nil
		},
	}
	value.Flags().StringVar(&amount, "amount", "", "amount in base units")
	_ = value.MarkFlagRequired("amount")

	cmd.AddCommand(get, set, value)
	return cmd
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/reviewlens/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set ReviewLens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		fmt.Printf("log_level: %s\n", c.LogLevel)
		fmt.Printf("log_format: %s\n", c.LogFormat)
		fmt.Printf("bucketing: %s\n", c.Bucketing)
		fmt.Printf("workers: %d\n", c.Workers)
		fmt.Printf("output_format: %s\n", c.OutputFormat)
		fmt.Printf("http_addr: %s\n", c.HTTPAddr)
		fmt.Printf("request_timeout_sec: %d\n", c.RequestTimeoutSec)
		fmt.Printf("rate_limit_rps: %.2f\n", c.RateLimitRPS)
		fmt.Printf("rate_limit_burst: %d\n", c.RateLimitBurst)
		k := c.Keywords
		fmt.Printf("keywords.repurchase: %s\n", strings.Join(k.Repurchase, ","))
		fmt.Printf("keywords.first_purchase: %s\n", strings.Join(k.FirstPurchase, ","))
		fmt.Printf("keywords.plain: %s\n", strings.Join(k.Plain, ","))
		fmt.Printf("keywords.value_for_money: %s\n", strings.Join(k.ValueForMoney, ","))
		fmt.Printf("keywords.oily: %s\n", strings.Join(k.Oily, ","))
		fmt.Printf("keywords.sticky_texture: %s\n", strings.Join(k.StickyTexture, ","))
		fmt.Printf("keywords.no_irritation: %s\n", strings.Join(k.NoIrritation, ","))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := setConfigValue(cfg, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func setConfigValue(c *cfgpkg.Global, key, val string) error {
	list := func() []string {
		var out []string
		for _, p := range strings.Split(val, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	switch key {
	case "log_level":
		c.LogLevel = strings.ToLower(val)
	case "log_format":
		c.LogFormat = strings.ToLower(val)
	case "bucketing":
		c.Bucketing = strings.ToLower(val)
	case "output_format":
		c.OutputFormat = strings.ToLower(val)
	case "http_addr":
		c.HTTPAddr = val
	case "workers", "request_timeout_sec", "rate_limit_burst":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for %s: %w", key, err)
		}
		switch key {
		case "workers":
			c.Workers = i
		case "request_timeout_sec":
			c.RequestTimeoutSec = i
		default:
			c.RateLimitBurst = i
		}
	case "rate_limit_rps":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid float for rate_limit_rps: %w", err)
		}
		c.RateLimitRPS = f
	case "keywords.repurchase":
		c.Keywords.Repurchase = list()
	case "keywords.first_purchase":
		c.Keywords.FirstPurchase = list()
	case "keywords.plain":
		c.Keywords.Plain = list()
	case "keywords.value_for_money":
		c.Keywords.ValueForMoney = list()
	case "keywords.oily":
		c.Keywords.Oily = list()
	case "keywords.sticky_texture":
		c.Keywords.StickyTexture = list()
	case "keywords.no_irritation":
		c.Keywords.NoIrritation = list()
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

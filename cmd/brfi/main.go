// Command brfi prices Brazilian Treasury bonds and derives curve and risk
// figures from the command line. Dates are DD-MM-YYYY, rates are decimals
// (0.12 = 12%) and rate lists are comma separated.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pmfaria/brfi/analysis"
	"github.com/pmfaria/brfi/bond"
	"github.com/pmfaria/brfi/calendar"
	"github.com/pmfaria/brfi/curve"
	"github.com/pmfaria/brfi/utils"
)

var (
	flagSettlement string
	flagVerbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "brfi",
		Short:         "Brazilian fixed income pricing and curve toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if flagVerbose || viper.GetBool("verbose") {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
		},
	}

	root.PersistentFlags().StringVarP(&flagSettlement, "settlement", "s", "", "settlement date (DD-MM-YYYY)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	viper.SetEnvPrefix("BRFI")
	viper.AutomaticEnv()
	viper.SetConfigName("brfi")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	if err := viper.ReadInConfig(); err == nil {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("config loaded")
	}

	root.AddCommand(
		newPriceCmd(),
		newQuotationCmd(),
		newCurveCmd(),
		newForwardCmd(),
		newDurationCmd(),
		newDV01Cmd(),
		newSpreadCmd(),
		newBDaysCmd(),
	)
	return root
}

func newPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <type> <maturity> <rate>",
		Short: "ANBIMA price of an LTN or NTN-F",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, settlement, maturity, rate, err := parsePricingArgs(args)
			if err != nil {
				return err
			}
			p, err := bond.Price(t, settlement, maturity, rate)
			if err != nil {
				return err
			}
			printFixed(cmd, p, 6)
			return nil
		},
	}
}

func newQuotationCmd() *cobra.Command {
	var vna float64
	c := &cobra.Command{
		Use:   "quotation <type> <maturity> <rate>",
		Short: "ANBIMA quotation of an NTN-B, NTN-C or LFT",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, settlement, maturity, rate, err := parsePricingArgs(args)
			if err != nil {
				return err
			}
			q, err := bond.Quotation(t, settlement, maturity, rate)
			if err != nil {
				return err
			}
			if vna > 0 {
				printFixed(cmd, bond.PriceFromQuotation(vna, q), 6)
				return nil
			}
			printFixed(cmd, q, 4)
			return nil
		},
	}
	c.Flags().Float64Var(&vna, "vna", 0, "updated nominal value; converts the quotation to a price")
	return c
}

func newCurveCmd() *cobra.Command {
	var showCoupons bool
	c := &cobra.Command{
		Use:   "curve <ltn-maturities> <ltn-rates> <ntnf-maturities> <ntnf-rates>",
		Short: "Bootstrap the nominal (PRE) spot curve",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			settlement, err := settlementDate()
			if err != nil {
				return err
			}
			ltnMats, err := parseDates(args[0])
			if err != nil {
				return err
			}
			ltnRates, err := parseFloats(args[1])
			if err != nil {
				return err
			}
			ntnfMats, err := parseDates(args[2])
			if err != nil {
				return err
			}
			ntnfRates, err := parseFloats(args[3])
			if err != nil {
				return err
			}

			var spots []bond.SpotRate
			if showCoupons {
				spots, err = bond.SpotRatesNTNF(settlement, ltnMats, ltnRates, ntnfMats, ntnfRates, true)
			} else {
				spots, err = analysis.PreCurve(settlement, ltnMats, ltnRates, ntnfMats, ntnfRates)
			}
			if err != nil {
				return err
			}
			for _, s := range spots {
				cmd.Printf("%s\t%d\t%s\n", s.MaturityDate.Format("02-01-2006"), s.BDays,
					decimal.NewFromFloat(s.Rate).StringFixed(8))
			}
			return nil
		},
	}
	c.Flags().BoolVar(&showCoupons, "show-coupons", false, "keep every bootstrap vertex, not only the quoted maturities")
	return c
}

func newForwardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fwd <bdays1> <bdays2> <rate1> <rate2>",
		Short: "Forward rate between two curve vertices",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			bd1, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bdays1: %w", err)
			}
			bd2, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("bdays2: %w", err)
			}
			r1, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("rate1: %w", err)
			}
			r2, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("rate2: %w", err)
			}
			printFixed(cmd, curve.Forward(bd1, bd2, r1, r2), 10)
			return nil
		},
	}
}

func newDurationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration <type> <maturity> <rate>",
		Short: "Macaulay duration in business years",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, settlement, maturity, rate, err := parsePricingArgs(args)
			if err != nil {
				return err
			}
			d, err := bond.Duration(t, settlement, maturity, rate)
			if err != nil {
				return err
			}
			printFixed(cmd, d, 8)
			return nil
		},
	}
}

func newDV01Cmd() *cobra.Command {
	var vna float64
	c := &cobra.Command{
		Use:   "dv01 <type> <maturity> <rate>",
		Short: "Price impact of a 1bp yield increase",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, settlement, maturity, rate, err := parsePricingArgs(args)
			if err != nil {
				return err
			}
			var d float64
			switch t {
			case bond.NTNB, bond.NTNC:
				if vna <= 0 {
					return fmt.Errorf("dv01: %s requires --vna", t)
				}
				d, err = bond.DV01FromVNA(t, settlement, maturity, rate, vna)
			default:
				d, err = bond.DV01(t, settlement, maturity, rate)
			}
			if err != nil {
				return err
			}
			printFixed(cmd, d, 8)
			return nil
		},
	}
	c.Flags().Float64Var(&vna, "vna", 0, "updated nominal value for indexed bonds")
	return c
}

func newSpreadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spread <maturity> <rate> <di-expirations> <di-rates>",
		Short: "NTN-F net spread over the DI curve, in basis points",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			settlement, err := settlementDate()
			if err != nil {
				return err
			}
			maturity, err := utils.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("maturity: %w", err)
			}
			rate, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("rate: %w", err)
			}
			diExps, err := parseDates(args[2])
			if err != nil {
				return err
			}
			diRates, err := parseFloats(args[3])
			if err != nil {
				return err
			}
			s, err := bond.DINetSpread(settlement, maturity, rate, diExps, diRates)
			if err != nil {
				return err
			}
			printFixed(cmd, s*1e4, 2)
			return nil
		},
	}
}

func newBDaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bdays <start> <end>",
		Short: "Business days between two dates (start inclusive, end exclusive)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := utils.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("start: %w", err)
			}
			end, err := utils.ParseDate(args[1])
			if err != nil {
				return fmt.Errorf("end: %w", err)
			}
			cmd.Println(calendar.Count(start, end))
			return nil
		},
	}
}

func settlementDate() (time.Time, error) {
	s := flagSettlement
	if s == "" {
		s = viper.GetString("settlement")
	}
	if s == "" {
		return time.Time{}, fmt.Errorf("settlement date required (--settlement or BRFI_SETTLEMENT)")
	}
	d, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("settlement: %w", err)
	}
	return d, nil
}

func parsePricingArgs(args []string) (bond.Type, time.Time, time.Time, float64, error) {
	t, err := bond.ParseType(args[0])
	if err != nil {
		return 0, time.Time{}, time.Time{}, 0, err
	}
	settlement, err := settlementDate()
	if err != nil {
		return 0, time.Time{}, time.Time{}, 0, err
	}
	maturity, err := utils.ParseDate(args[1])
	if err != nil {
		return 0, time.Time{}, time.Time{}, 0, fmt.Errorf("maturity: %w", err)
	}
	rate, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return 0, time.Time{}, time.Time{}, 0, fmt.Errorf("rate: %w", err)
	}
	log.Debug().Stringer("type", t).Time("maturity", maturity).Float64("rate", rate).Msg("pricing")
	return t, settlement, maturity, rate, nil
}

func parseDates(csv string) ([]time.Time, error) {
	parts := strings.Split(csv, ",")
	out := make([]time.Time, len(parts))
	for i, p := range parts {
		d, err := utils.ParseDate(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("date %q: %w", p, err)
		}
		out[i] = d
	}
	return out, nil
}

func parseFloats(csv string) ([]float64, error) {
	parts := strings.Split(csv, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("rate %q: %w", p, err)
		}
		out[i] = f
	}
	return out, nil
}

// printFixed writes a value with a fixed decimal scale, avoiding float
// formatting artifacts in script-facing output.
func printFixed(cmd *cobra.Command, v float64, places int32) {
	cmd.Println(decimal.NewFromFloat(v).StringFixed(places))
}

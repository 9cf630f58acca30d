package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/99minutos/landed-cost/internal/core/domain"
	"github.com/99minutos/landed-cost/internal/core/service"
	"github.com/99minutos/landed-cost/internal/pkg/config"
)

var (
	estProduct  domain.ProductDetails
	estShipping domain.ShippingDetails
	estRefDB    string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Calculate one landed cost and print it as JSON",
	Long: `Run a single landed cost calculation from flags and print the result.

Duty and tax reference data come from REFERENCE_BACKEND, or from a SQLite file
when --ref-db is given. The duty cache is always in memory.

Examples:
  landedcost estimate --hs-code 8517.62 --origin CN --destination US --value 250 --weight 3
  landedcost estimate --origin DE --destination GB --value 40 --quantity 200 \
    --mode "Sea Freight" --shipment-type LCL --package Pallet --weight 800 \
    --length 120 --width 100 --height 150 --ref-db rates.db`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.StringVar(&estProduct.Description, "description", "", "product description")
	f.StringVar(&estProduct.Category, "category", "", "product category (Electronics, Clothing, ...)")
	f.StringVar(&estProduct.HSCode, "hs-code", "", "HS code, e.g. 8517.62")
	f.StringVar(&estProduct.OriginCountry, "origin", "", "origin country (ISO alpha-2)")
	f.StringVar(&estProduct.DestinationCountry, "destination", "", "destination country (ISO alpha-2)")
	f.Float64Var(&estProduct.Value, "value", 0, "unit value")

	f.IntVar(&estShipping.Quantity, "quantity", 1, "number of units")
	f.StringVar(&estShipping.TransportMode, "mode", domain.TransportAirFreight, "transport mode")
	f.StringVar(&estShipping.ShipmentType, "shipment-type", "", "shipment type (LCL, FCL, Express, ...)")
	f.StringVar(&estShipping.PackageType, "package", domain.PackageBox, "package type")
	f.Float64Var(&estShipping.Weight, "weight", 0, "total shipment weight in kg")
	f.Float64Var(&estShipping.Dimensions.Length, "length", 30, "length")
	f.Float64Var(&estShipping.Dimensions.Width, "width", 20, "width")
	f.Float64Var(&estShipping.Dimensions.Height, "height", 15, "height")
	f.StringVar(&estShipping.Dimensions.Unit, "unit", "cm", "dimension unit (cm, mm, m, in)")

	f.StringVar(&estRefDB, "ref-db", "", "SQLite reference database to read rates from")

	_ = estimateCmd.MarkFlagRequired("origin")
	_ = estimateCmd.MarkFlagRequired("destination")
	_ = estimateCmd.MarkFlagRequired("value")
	_ = estimateCmd.MarkFlagRequired("weight")
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	local := *cfg
	local.CacheBackend = config.BackendMemory
	if estRefDB != "" {
		local.ReferenceBackend = config.BackendSQLite
		local.SQLite.Path = estRefDB
	}

	eng, err := buildEngine(cmd.Context(), &local, service.FirstCarrier, log)
	if err != nil {
		return err
	}
	defer eng.Close(cmd.Context())

	res, err := eng.costs.CalculateCosts(cmd.Context(), estProduct, estShipping)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

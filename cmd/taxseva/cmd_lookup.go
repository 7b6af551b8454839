package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taxseva/internal/logging"
	"taxseva/internal/money"
	"taxseva/internal/records"
)

var (
	lookupMobile   string
	lookupAadhaar  string
	lookupBuilding string
)

// lookupCmd performs a one-shot search and prints the tax summary without
// starting the TUI. Useful for scripting and for counter staff.
var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up a building's tax status without the wizard",
	Long: `Resolves a building by mobile number, Aadhaar number, or building ID
and prints its default tax record (the first pending one, or the first on
record when nothing is pending).

Example:
  taxseva lookup --mobile 9000000000
  taxseva lookup --building KSB-1021`,
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVar(&lookupMobile, "mobile", "", "registered mobile number")
	lookupCmd.Flags().StringVar(&lookupAadhaar, "aadhaar", "", "Aadhaar number")
	lookupCmd.Flags().StringVar(&lookupBuilding, "building", "", "building ID")
}

func runLookup(cmd *cobra.Command, args []string) error {
	_, ctrl, err := bootstrap()
	if err != nil {
		return err
	}
	defer logging.CloseAll()

	criteria := records.Criteria{
		Mobile:     lookupMobile,
		Aadhaar:    lookupAadhaar,
		BuildingID: lookupBuilding,
	}
	logger.Debug("running lookup",
		zap.String("mobile", lookupMobile),
		zap.String("building", lookupBuilding),
	)

	building, err := ctrl.Search(criteria)
	if err != nil {
		switch {
		case records.IsValidation(err):
			return errors.New("provide at least one of --mobile, --aadhaar, --building")
		default:
			return err
		}
	}

	tax := ctrl.DisplayTax()
	logger.Info("lookup resolved",
		zap.String("building_id", building.BuildingID),
		zap.String("tax_id", tax.ID),
		zap.String("status", string(tax.Status)),
	)

	fmt.Printf("Owner:         %s\n", building.OwnerName)
	fmt.Printf("Building ID:   %s\n", building.BuildingID)
	fmt.Printf("Ward:          %s\n", building.Ward)
	fmt.Printf("Address:       %s\n", building.Address)
	fmt.Printf("Tax amount:    %s\n", money.FormatINR(tax.TaxAmount))
	fmt.Printf("Penalty:       %s\n", money.FormatINR(tax.Penalty))
	fmt.Printf("Due date:      %s\n", tax.DueDate)
	fmt.Printf("Total payable: %s\n", money.FormatINR(tax.Total()))
	fmt.Printf("Status:        %s\n", tax.Status.Label())
	return nil
}

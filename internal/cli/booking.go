package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tourvia/internal/domain"
)

func init() {
	rootCmd.AddCommand(bookingCmd)
	bookingCmd.AddCommand(bookingListCmd)
	bookingCmd.AddCommand(bookingSetStatusCmd)

	bookingListCmd.Flags().String("status", "", "Filter by status (REQUESTED, CONFIRMED, CANCELLED, COMPLETED)")
	bookingListCmd.Flags().Int("limit", 50, "Maximum number of bookings")

	bookingSetStatusCmd.Flags().String("memo", "", "Admin memo to attach")
}

var bookingCmd = &cobra.Command{
	Use:     "booking",
	Short:   "Triage bookings",
	Aliases: []string{"bookings"},
}

var bookingListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List bookings",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		profile, err := GetCurrentProfile()
		if err != nil {
			return err
		}
		client := NewAPIClientFromProfile(profile)

		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		bookings, total, err := client.ListBookings(cmd.Context(), status, limit)
		if err != nil {
			return fmt.Errorf("failed to list bookings: %w", err)
		}

		return RenderBookings(bookings, total, viper.GetString("output"))
	},
}

var bookingSetStatusCmd = &cobra.Command{
	Use:   "set-status [id] [status]",
	Short: "Set a booking's status",
	Long: `Set a booking's status to REQUESTED, CONFIRMED, CANCELLED or COMPLETED.

Any status may replace any other; there is no enforced ordering.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := GetCurrentProfile()
		if err != nil {
			return err
		}
		client := NewAPIClientFromProfile(profile)

		status := domain.BookingStatus(args[1])
		patch := &domain.AdminBookingPatch{Status: &status}
		if memo, _ := cmd.Flags().GetString("memo"); memo != "" {
			patch.AdminMemo = &memo
		}

		booking, err := client.PatchBooking(cmd.Context(), args[0], patch)
		if err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		fmt.Printf("Booking %s is now %s\n", booking.ID, booking.Status)
		return nil
	},
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tourvia/internal/domain"
)

func init() {
	rootCmd.AddCommand(noticeCmd)
	noticeCmd.AddCommand(noticeListCmd)
	noticeCmd.AddCommand(noticePublishCmd)
	noticeCmd.AddCommand(noticeUnpublishCmd)
	noticeCmd.AddCommand(noticePinCmd)
	noticeCmd.AddCommand(noticeUnpinCmd)

	noticeListCmd.Flags().String("published", "", "Filter by publish state (Y, N, ALL)")

	rootCmd.AddCommand(inquiryCmd)
	inquiryCmd.AddCommand(inquiryListCmd)

	inquiryListCmd.Flags().String("status", "", "Filter by status (NEW, IN_PROGRESS, DONE)")
	inquiryListCmd.Flags().Int("limit", 50, "Maximum number of inquiries")
}

var noticeCmd = &cobra.Command{
	Use:     "notice",
	Short:   "Manage site notices",
	Aliases: []string{"notices"},
}

var noticeListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List notices",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		profile, err := GetCurrentProfile()
		if err != nil {
			return err
		}
		client := NewAPIClientFromProfile(profile)

		published, _ := cmd.Flags().GetString("published")
		notices, err := client.ListNotices(cmd.Context(), published)
		if err != nil {
			return fmt.Errorf("failed to list notices: %w", err)
		}

		return RenderNotices(notices, viper.GetString("output"))
	},
}

var noticePublishCmd = &cobra.Command{
	Use:   "publish [id]",
	Short: "Publish a notice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return patchNoticeFlag(cmd, args[0], func(input *domain.NoticeInput, v bool) {
			input.Published = &v
		}, true, "published")
	},
}

var noticeUnpublishCmd = &cobra.Command{
	Use:   "unpublish [id]",
	Short: "Unpublish a notice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return patchNoticeFlag(cmd, args[0], func(input *domain.NoticeInput, v bool) {
			input.Published = &v
		}, false, "unpublished")
	},
}

var noticePinCmd = &cobra.Command{
	Use:   "pin [id]",
	Short: "Pin a notice to the top of the public listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return patchNoticeFlag(cmd, args[0], func(input *domain.NoticeInput, v bool) {
			input.Pinned = &v
		}, true, "pinned")
	},
}

var noticeUnpinCmd = &cobra.Command{
	Use:   "unpin [id]",
	Short: "Unpin a notice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return patchNoticeFlag(cmd, args[0], func(input *domain.NoticeInput, v bool) {
			input.Pinned = &v
		}, false, "unpinned")
	},
}

func patchNoticeFlag(cmd *cobra.Command, noticeID string, set func(*domain.NoticeInput, bool), value bool, verb string) error {
	profile, err := GetCurrentProfile()
	if err != nil {
		return err
	}
	client := NewAPIClientFromProfile(profile)

	var input domain.NoticeInput
	set(&input, value)

	notice, err := client.PatchNotice(cmd.Context(), noticeID, &input)
	if err != nil {
		return fmt.Errorf("failed to update notice: %w", err)
	}

	fmt.Printf("Notice '%s' %s\n", notice.Title, verb)
	return nil
}

var inquiryCmd = &cobra.Command{
	Use:     "inquiry",
	Short:   "Triage customer inquiries",
	Aliases: []string{"inquiries"},
}

var inquiryListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List inquiries",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		profile, err := GetCurrentProfile()
		if err != nil {
			return err
		}
		client := NewAPIClientFromProfile(profile)

		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		inquiries, total, err := client.ListInquiries(cmd.Context(), status, limit)
		if err != nil {
			return fmt.Errorf("failed to list inquiries: %w", err)
		}

		return RenderInquiries(inquiries, total, viper.GetString("output"))
	},
}

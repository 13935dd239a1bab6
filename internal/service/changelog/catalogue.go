package changelog

import "github.com/nonutti-ng/web/internal/domain"

// entries is the release history, newest first.
var entries = []domain.ChangelogEntry{
	{
		ID:      "v1.0.1",
		Version: "1.0.1",
		Date:    "2025-11-01",
		Title:   "Bug fix #1 and Improvements",
		Description: "Various bug fixes and some minor improvements. I hope you are enjoying what I've built so far! " +
			"As always, feel free to reach out with any feedback or issues (sticksdev on discord, or JustALuinxNerd17 on reddit).",
		Changes: []domain.Change{
			{
				Type: domain.ChangeBreaking,
				Description: "Removed discord scope guilds.join on login with Discord as it was not being used. " +
					"Many other people raised privacy concerns about this scope, so I decided to remove it entirely to ease those concerns. " +
					"No functionality was affected by this change. You may revoke this permission from your Discord settings if you had previously granted it.",
			},
			{
				Type: domain.ChangeFeature,
				Description: "Settings page added! You can now customize your experience and manage your account settings. " +
					"Including linking your Reddit account after onboarding (if you skipped it initially), and changing your timezone preference. " +
					"We'll add more settings in the future!",
			},
			{
				Type: domain.ChangeFeature,
				Description: "Added changelog feature to track new updates. This will show you what's new whenever we release a new version, " +
					"so you can stay informed about the latest features and fixes. You can view the changelog from the settings page anytime, " +
					"and we'll also show it automatically when there are new updates.",
			},
			{
				Type: domain.ChangeImprovement,
				Description: "Improved timezone handling. Dates should now display more consistently across different browsers and regions, " +
					"reducing issues related to timezone and how the UI displays dates and sometimes may allow you to send an incorrect date to the server.",
			},
			{
				Type:        domain.ChangeBugfix,
				Description: "Fixed an issue where onboarding was failing to generate the survey ID when completing onboarding. Onboarding should now complete successfully every time.",
			},
			{
				Type: domain.ChangeBugfix,
				Description: "Fixed an issue when marking an existing day as out, would create a duplicate entry instead of updating the existing one. " +
					"These duplicate entries have been cleaned up in the database.",
			},
			{
				Type:        domain.ChangeBugfix,
				Description: "Fixed issues with ID generation when logging a day. Logging should error out much less frequently now.",
			},
		},
	},
}

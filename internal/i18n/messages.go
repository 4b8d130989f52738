package i18n

var defaultMessages = `
	[login_command_usage]
	other = "Sign in to GitHub using the device code flow"

	[login_requesting]
	other = "Requesting a device code..."

	[login_enter_code]
	other = "Enter the code {{.UserCode}} at {{.VerificationURI}}"

	[login_waiting]
	other = "Waiting for authorization..."

	[login_success]
	other = "Signed in as {{.Login}}"

	[login_failed]
	other = "Login failed: {{.Error}}"

	[logout_command_usage]
	other = "Sign out and erase the stored credential"

	[logout_success]
	other = "Signed out. The stored credential was erased."

	[whoami_command_usage]
	other = "Show the authenticated user"

	[whoami_not_authenticated]
	other = "Not signed in. Run 'matereview login' first."

	[sync_command_usage]
	other = "Sync pull requests from the remote into the local mirror"

	[sync_details_flag_usage]
	other = "Also sync the details of every pull request"

	[sync_already_running]
	other = "A sync for this target is already running"

	[sync_success]
	other = "Synced {{.Count}} pull requests"

	[sync_error]
	other = "Sync failed: {{.Error}}"

	[list_command_usage]
	other = "List the pull requests ready to display"

	[list_empty]
	other = "No pull requests with synced details yet. Run 'matereview sync --details'."

	[review_command_usage]
	other = "Manage the pending review of a pull request"

	[review_start_usage]
	other = "Start a review on a pull request"

	[review_comment_usage]
	other = "Add a comment to a pull request"

	[review_submit_usage]
	other = "Submit the pending review"

	[review_cancel_usage]
	other = "Cancel the pending review"

	[review_pr_flag_usage]
	other = "Pull request id"

	[review_started]
	other = "Review started on {{.PullRequestID}}"

	[review_already_started]
	other = "There is already a pending review for {{.PullRequestID}}"

	[review_not_ready]
	other = "The review has not been confirmed by the remote yet; try again in a moment"

	[review_submitted]
	other = "Review submitted for {{.PullRequestID}}"

	[review_cancelled]
	other = "Review cancelled for {{.PullRequestID}}"

	[comment_added]
	other = "Comment added to {{.PullRequestID}}"

	[comment_failed]
	other = "The comment could not be posted: {{.Error}}. Your draft was restored."

	[tasks_command_usage]
	other = "Show the background tasks in flight"

	[tasks_empty]
	other = "No background tasks"

	[summarize_command_usage]
	other = "Summarize a locally synced pull request with AI"

	[summarize_missing_details]
	other = "The details of this pull request were never synced. Run 'matereview sync --details' first."

	[error_missing_api_key]
	other = "Gemini API key is not configured. Use 'matereview config set-api-key'."

	[error_empty_prompt]
	other = "Cannot summarize an empty pull request"

	[config_command_usage]
	other = "Manage the MateReview configuration"

	[config_init_usage]
	other = "Create the default configuration"

	[config_show_usage]
	other = "Show the current configuration"

	[config_set_lang_usage]
	other = "Set the interface language (en/es)"

	[config_set_api_key_usage]
	other = "Set the Gemini API key"

	[config_set_repo_usage]
	other = "Set the repository to mirror (owner/name)"

	[config_saved]
	other = "Configuration saved"

	[error_fetching_details]
	other = "Could not fetch the details of {{.PullRequestID}}: {{.Error}}"

	[error_not_authenticated]
	other = "Not signed in. Run 'matereview login' first."

	[error_missing_repository]
	other = "No repository configured. Use 'matereview config set-repo --repo owner/name'."

	[summarize_empty_response]
	other = "The AI returned an empty summary"

	[unsupported_language]
	other = "Unsupported language. Valid values: en, es"

	[language_configured]
	other = "Language set to {{.Lang}}"

	[app_usage]
	other = "Local-first code review client for GitHub"

	[app_description]
	other = "Mirrors the pull requests of a repository, lets you review and comment while offline-tolerant, and reconciles your actions with GitHub in the background."

	[review_body_flag_usage]
	other = "Comment or review body"

	[review_path_flag_usage]
	other = "File path for a line comment"

	[review_line_flag_usage]
	other = "Line number for a line comment"

	[review_reply_flag_usage]
	other = "Id of the comment being replied to"

	[review_event_flag_usage]
	other = "Review verdict: approve, request-changes or comment"

	[review_invalid_event]
	other = "Invalid verdict '{{.Event}}'. Valid values: approve, request-changes, comment"

	[config_invalid_repo]
	other = "Invalid repository '{{.Repo}}'. Expected the owner/name form."
`

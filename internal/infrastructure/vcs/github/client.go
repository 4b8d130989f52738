package github

import (
	"context"
	"fmt"
	"net/http"

	domainErrors "github.com/Tomas-vilte/MateReview/internal/domain/errors"
	"github.com/Tomas-vilte/MateReview/internal/domain/models"
	"github.com/Tomas-vilte/MateReview/internal/domain/ports"
	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

var _ ports.ReviewClient = (*GitHubReviewClient)(nil)

type PullRequestsService interface {
	List(ctx context.Context, owner, repo string, opts *github.PullRequestListOptions) ([]*github.PullRequest, *github.Response, error)
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	ListComments(ctx context.Context, owner, repo string, number int, opts *github.PullRequestListCommentsOptions) ([]*github.PullRequestComment, *github.Response, error)
	ListReviews(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.PullRequestReview, *github.Response, error)
	ListCommits(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
	CreateReview(ctx context.Context, owner, repo string, number int, review *github.PullRequestReviewRequest) (*github.PullRequestReview, *github.Response, error)
	SubmitReview(ctx context.Context, owner, repo string, number int, reviewID int64, review *github.PullRequestReviewRequest) (*github.PullRequestReview, *github.Response, error)
	DeletePendingReview(ctx context.Context, owner, repo string, number int, reviewID int64) (*github.PullRequestReview, *github.Response, error)
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.PullRequestComment) (*github.PullRequestComment, *github.Response, error)
	CreateCommentInReplyTo(ctx context.Context, owner, repo string, number int, body string, commentID int64) (*github.PullRequestComment, *github.Response, error)
}

type IssuesService interface {
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

type ChecksService interface {
	ListCheckRunsForRef(ctx context.Context, owner, repo, ref string, opts *github.ListCheckRunsOptions) (*github.ListCheckRunsResults, *github.Response, error)
}

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

// GitHubReviewClient implementa ports.ReviewClient sobre la API de GitHub.
type GitHubReviewClient struct {
	prService     PullRequestsService
	issuesService IssuesService
	checksService ChecksService
	usersService  UsersService
	owner         string
	repo          string
}

func NewGitHubReviewClient(owner, repo, token string) *GitHubReviewClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &GitHubReviewClient{
		prService:     client.PullRequests,
		issuesService: client.Issues,
		checksService: client.Checks,
		usersService:  client.Users,
		owner:         owner,
		repo:          repo,
	}
}

func NewGitHubReviewClientWithServices(
	prService PullRequestsService,
	issuesService IssuesService,
	checksService ChecksService,
	usersService UsersService,
	owner string,
	repo string,
) *GitHubReviewClient {
	return &GitHubReviewClient{
		prService:     prService,
		issuesService: issuesService,
		checksService: checksService,
		usersService:  usersService,
		owner:         owner,
		repo:          repo,
	}
}

func (c *GitHubReviewClient) ListPullRequests(ctx context.Context) ([]models.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var result []models.PullRequest
	for {
		prs, resp, err := c.prService.List(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, wrapRemoteError("listPullRequests", resp, err)
		}
		for _, pr := range prs {
			result = append(result, c.toPullRequest(pr))
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

func (c *GitHubReviewClient) GetPullRequest(ctx context.Context, number int) (*models.PullRequest, error) {
	pr, resp, err := c.prService.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, wrapRemoteError("getPullRequest", resp, err)
	}
	converted := c.toPullRequest(pr)
	return &converted, nil
}

func (c *GitHubReviewClient) GetPullRequestDetails(ctx context.Context, pr models.PullRequest) (*models.PullRequestDetails, error) {
	details := &models.PullRequestDetails{PullRequestID: pr.ID}

	comments, resp, err := c.prService.ListComments(ctx, pr.RepositoryOwner, pr.RepositoryName, pr.Number, &github.PullRequestListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, wrapRemoteError("listComments", resp, err)
	}
	for _, comment := range comments {
		details.Comments = append(details.Comments, toComment(comment))
	}

	reviews, resp, err := c.prService.ListReviews(ctx, pr.RepositoryOwner, pr.RepositoryName, pr.Number, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, wrapRemoteError("listReviews", resp, err)
	}
	for _, review := range reviews {
		details.Reviews = append(details.Reviews, models.Review{
			ID:          review.GetNodeID(),
			NumericID:   review.GetID(),
			State:       review.GetState(),
			Body:        review.GetBody(),
			Author:      toUser(review.GetUser()),
			SubmittedAt: review.GetSubmittedAt().Time,
		})
	}

	commits, resp, err := c.prService.ListCommits(ctx, pr.RepositoryOwner, pr.RepositoryName, pr.Number, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, wrapRemoteError("listCommits", resp, err)
	}
	for _, commit := range commits {
		details.Commits = append(details.Commits, models.Commit{
			SHA:     commit.GetSHA(),
			Message: commit.GetCommit().GetMessage(),
			Author:  toUser(commit.GetAuthor()),
		})
	}

	files, resp, err := c.prService.ListFiles(ctx, pr.RepositoryOwner, pr.RepositoryName, pr.Number, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, wrapRemoteError("listFiles", resp, err)
	}
	for _, file := range files {
		details.FileChanges = append(details.FileChanges, models.FileChange{
			Path:      file.GetFilename(),
			Status:    file.GetStatus(),
			Additions: file.GetAdditions(),
			Deletions: file.GetDeletions(),
		})
	}

	if pr.HeadSHA != "" {
		runs, resp, err := c.checksService.ListCheckRunsForRef(ctx, pr.RepositoryOwner, pr.RepositoryName, pr.HeadSHA, &github.ListCheckRunsOptions{
			ListOptions: github.ListOptions{PerPage: 100},
		})
		if err != nil {
			return nil, wrapRemoteError("listCheckRuns", resp, err)
		}
		for _, run := range runs.CheckRuns {
			details.Checks = append(details.Checks, models.Check{
				ID:         run.GetID(),
				Name:       run.GetName(),
				Status:     run.GetStatus(),
				Conclusion: run.GetConclusion(),
			})
		}
	}

	return details, nil
}

func (c *GitHubReviewClient) CreateReview(ctx context.Context, owner, repo string, pullNumber int) (*models.PendingReview, error) {
	review, resp, err := c.prService.CreateReview(ctx, owner, repo, pullNumber, &github.PullRequestReviewRequest{})
	if err != nil {
		return nil, wrapRemoteError("createReview", resp, err)
	}

	return &models.PendingReview{
		GitHubID:        review.GetNodeID(),
		GitHubNumericID: review.GetID(),
		State:           review.GetState(),
		Body:            review.GetBody(),
	}, nil
}

func (c *GitHubReviewClient) SubmitReview(ctx context.Context, req ports.SubmitRequest) error {
	request := &github.PullRequestReviewRequest{
		Event: github.Ptr(string(req.Event)),
	}
	if req.Body != "" {
		request.Body = github.Ptr(req.Body)
	}

	_, resp, err := c.prService.SubmitReview(ctx, req.Owner, req.Repo, req.PullNumber, req.ReviewID, request)
	if err != nil {
		return wrapRemoteError("submitReview", resp, err)
	}
	return nil
}

func (c *GitHubReviewClient) DeleteReview(ctx context.Context, owner, repo string, pullNumber int, reviewID int64) error {
	_, resp, err := c.prService.DeletePendingReview(ctx, owner, repo, pullNumber, reviewID)
	if err != nil {
		return wrapRemoteError("deleteReview", resp, err)
	}
	return nil
}

func (c *GitHubReviewClient) CreateComment(ctx context.Context, req ports.CommentRequest) (*models.Comment, error) {
	switch {
	case req.InReplyTo != 0:
		comment, resp, err := c.prService.CreateCommentInReplyTo(ctx, req.Owner, req.Repo, req.PullNumber, req.Body, req.InReplyTo)
		if err != nil {
			return nil, wrapRemoteError("createComment", resp, err)
		}
		converted := toComment(comment)
		return &converted, nil

	case req.Path != "":
		// Un comentario de línea necesita el commit sobre el que se ancla.
		pr, resp, err := c.prService.Get(ctx, req.Owner, req.Repo, req.PullNumber)
		if err != nil {
			return nil, wrapRemoteError("createComment", resp, err)
		}
		comment, resp, err := c.prService.CreateComment(ctx, req.Owner, req.Repo, req.PullNumber, &github.PullRequestComment{
			Body:     github.Ptr(req.Body),
			Path:     github.Ptr(req.Path),
			Line:     github.Ptr(req.Line),
			CommitID: github.Ptr(pr.GetHead().GetSHA()),
		})
		if err != nil {
			return nil, wrapRemoteError("createComment", resp, err)
		}
		converted := toComment(comment)
		return &converted, nil

	default:
		comment, resp, err := c.issuesService.CreateComment(ctx, req.Owner, req.Repo, req.PullNumber, &github.IssueComment{
			Body: github.Ptr(req.Body),
		})
		if err != nil {
			return nil, wrapRemoteError("createComment", resp, err)
		}
		return &models.Comment{
			ID:        comment.GetNodeID(),
			Body:      comment.GetBody(),
			Author:    toUser(comment.GetUser()),
			CreatedAt: comment.GetCreatedAt().Time,
		}, nil
	}
}

func (c *GitHubReviewClient) CurrentUser(ctx context.Context) (*models.User, error) {
	user, resp, err := c.usersService.Get(ctx, "")
	if err != nil {
		return nil, wrapRemoteError("currentUser", resp, err)
	}
	converted := toUser(user)
	return &converted, nil
}

func (c *GitHubReviewClient) toPullRequest(pr *github.PullRequest) models.PullRequest {
	labels := make([]string, 0, len(pr.Labels))
	for _, label := range pr.Labels {
		labels = append(labels, label.GetName())
	}
	assignees := make([]string, 0, len(pr.Assignees))
	for _, assignee := range pr.Assignees {
		assignees = append(assignees, assignee.GetLogin())
	}

	return models.PullRequest{
		ID:              pr.GetNodeID(),
		Number:          pr.GetNumber(),
		RepositoryOwner: c.owner,
		RepositoryName:  c.repo,
		Title:           pr.GetTitle(),
		Body:            pr.GetBody(),
		State:           pr.GetState(),
		HeadSHA:         pr.GetHead().GetSHA(),
		Author:          toUser(pr.GetUser()),
		Labels:          labels,
		Assignees:       assignees,
		CommentCount:    pr.GetComments() + pr.GetReviewComments(),
		CommitCount:     pr.GetCommits(),
		ChangedFiles:    pr.GetChangedFiles(),
		Additions:       pr.GetAdditions(),
		Deletions:       pr.GetDeletions(),
	}
}

func toComment(comment *github.PullRequestComment) models.Comment {
	converted := models.Comment{
		ID:        comment.GetNodeID(),
		Body:      comment.GetBody(),
		Path:      comment.GetPath(),
		Line:      comment.GetLine(),
		Author:    toUser(comment.GetUser()),
		CreatedAt: comment.GetCreatedAt().Time,
	}
	if comment.GetInReplyTo() != 0 {
		converted.InReplyTo = fmt.Sprintf("%d", comment.GetInReplyTo())
	}
	if reactions := comment.GetReactions(); reactions != nil {
		converted.Reactions = toReactions(reactions)
	}
	return converted
}

func toReactions(reactions *github.Reactions) []models.Reaction {
	var result []models.Reaction
	add := func(content string, count int) {
		if count > 0 {
			result = append(result, models.Reaction{Content: content, Count: count})
		}
	}
	add("+1", reactions.GetPlusOne())
	add("-1", reactions.GetMinusOne())
	add("laugh", reactions.GetLaugh())
	add("confused", reactions.GetConfused())
	add("heart", reactions.GetHeart())
	add("hooray", reactions.GetHooray())
	add("rocket", reactions.GetRocket())
	add("eyes", reactions.GetEyes())
	return result
}

func toUser(user *github.User) models.User {
	if user == nil {
		return models.User{}
	}
	return models.User{
		Login:     user.GetLogin(),
		AvatarURL: user.GetAvatarURL(),
	}
}

// wrapRemoteError clasifica las fallas contra la API: con respuesta HTTP es un
// rechazo remoto, sin respuesta es un problema de transporte.
func wrapRemoteError(operation string, resp *github.Response, err error) error {
	if resp != nil {
		return domainErrors.NewRemoteRejectionError(operation, resp.StatusCode, err.Error())
	}
	return domainErrors.NewNetworkError(operation, err)
}

package lens

import "github.com/lenscope/lenscope/internal/domain"

// GraphQL documents. Fragments are inlined so each operation stands alone.

const accountFields = `
    address
    owner
    score
    createdAt
    username { localName namespace }
    metadata { name bio picture coverPicture }
    operations { isFollowedByMe isFollowingMe }
`

const postFields = `
    id
    timestamp
    contentUri
    isDeleted
    isEdited
    author { ` + accountFields + ` }
    metadata {
      content
      tags
      attachments { item type altTag }
    }
    stats { upvotes comments reposts quotes bookmarks collects tips }
    operations { hasUpvoted hasReposted hasBookmarked }
`

const queryAccounts = `
  query Accounts($request: AccountsRequest!) {
    accounts(request: $request) {
      items { ` + accountFields + ` }
      pageInfo { next prev }
    }
  }
`

const queryAccountsBulk = `
  query AccountsBulk($request: AccountsBulkRequest!) {
    accountsBulk(request: $request) { ` + accountFields + ` }
  }
`

const queryAccount = `
  query Account($request: AccountRequest!) {
    account(request: $request) { ` + accountFields + ` }
  }
`

const queryAccountStats = `
  query AccountStats($request: AccountStatsRequest!) {
    accountStats(request: $request) {
      graphFollowStats { followers following }
      feedStats { posts comments reposts quotes reacted reactions collects }
    }
  }
`

const queryPosts = `
  query Posts($request: PostsRequest!) {
    posts(request: $request) {
      items {
        ` + postFields + `
        repostOf { ` + postFields + ` }
        commentOn { ` + postFields + ` }
      }
      pageInfo { next prev }
    }
  }
`

const queryPostsBulk = `
  query PostsBulk($request: PostsBulkRequest!) {
    postsBulk(request: $request) {
      ` + postFields + `
      repostOf { ` + postFields + ` }
      commentOn { ` + postFields + ` }
    }
  }
`

const queryPost = `
  query Post($request: PostRequest!) {
    post(request: $request) {
      ` + postFields + `
      repostOf { ` + postFields + ` }
      commentOn { ` + postFields + ` }
    }
  }
`

const mutationFollow = `
  mutation Follow($request: FollowRequest!) {
    follow(request: $request) {
      ... on FollowResponse { hash }
      ... on AccountFollowOperationValidationFailed { reason }
    }
  }
`

const mutationUnfollow = `
  mutation Unfollow($request: UnfollowRequest!) {
    unfollow(request: $request) {
      ... on UnfollowResponse { hash }
      ... on AccountFollowOperationValidationFailed { reason }
    }
  }
`

const mutationAddReaction = `
  mutation AddReaction($request: AddReactionRequest!) {
    addReaction(request: $request) {
      ... on AddReactionResponse { success }
      ... on AddReactionFailure { reason }
    }
  }
`

const mutationUndoReaction = `
  mutation UndoReaction($request: UndoReactionRequest!) {
    undoReaction(request: $request) {
      ... on UndoReactionResponse { success }
      ... on UndoReactionFailure { reason }
    }
  }
`

const mutationRepost = `
  mutation Repost($request: CreateRepostRequest!) {
    repost(request: $request) {
      ... on PostResponse { hash }
      ... on PostOperationValidationFailed { reason }
    }
  }
`

const mutationChallenge = `
  mutation Challenge($request: ChallengeRequest!) {
    challenge(request: $request) { id text code verifyUrl expiresAt }
  }
`

const queryChallengeStatus = `
  query ChallengeStatus($request: ChallengeStatusRequest!) {
    challengeStatus(request: $request) {
      status
      tokens { accessToken refreshToken idToken expiresAt account }
    }
  }
`

const mutationRefresh = `
  mutation Refresh($request: RefreshRequest!) {
    refresh(request: $request) {
      ... on AuthenticationTokens { accessToken refreshToken idToken expiresAt account }
      ... on ForbiddenError { reason }
    }
  }
`

const mutationRevoke = `
  mutation RevokeAuthentication($request: RevokeAuthenticationRequest!) {
    revokeAuthentication(request: $request)
  }
`

// accountsRequest builds the paginated accounts request variables
func accountsRequest(f domain.AccountFilter, cursor string) map[string]any {
	request := map[string]any{
		"pageSize": pageSizeName(f.PageSize),
	}
	if cursor != "" {
		request["cursor"] = cursor
	}

	filter := map[string]any{}
	switch {
	case f.SearchBy != "":
		filter["searchBy"] = map[string]any{"localNameQuery": f.SearchBy}
		if f.OrderBy != "" {
			request["orderBy"] = string(f.OrderBy)
		}
	case f.ManagedBy != "":
		filter["managedBy"] = map[string]any{"address": f.ManagedBy}
	case f.FollowersOf != "":
		filter["followersOf"] = f.FollowersOf
		if f.FollowOrderBy != "" {
			request["orderBy"] = string(f.FollowOrderBy)
		}
	case f.FollowingsOf != "":
		filter["followingsOf"] = f.FollowingsOf
		if f.FollowOrderBy != "" {
			request["orderBy"] = string(f.FollowOrderBy)
		}
	}
	if len(filter) > 0 {
		request["filter"] = filter
	}
	return request
}

// accountsBulkRequest builds the fetch-by-list request variables
func accountsBulkRequest(f domain.AccountFilter) map[string]any {
	request := map[string]any{}
	switch {
	case len(f.Addresses) > 0:
		request["addresses"] = f.Addresses
	case len(f.OwnedBy) > 0:
		request["ownedBy"] = f.OwnedBy
	case len(f.LocalNames) > 0:
		usernames := make([]map[string]any, len(f.LocalNames))
		for i, name := range f.LocalNames {
			usernames[i] = map[string]any{"localName": name}
		}
		request["usernames"] = usernames
	}
	return request
}

// postsRequest builds the paginated posts request variables
func postsRequest(f domain.PostFilter, cursor string) map[string]any {
	request := map[string]any{
		"pageSize": pageSizeName(f.PageSize),
	}
	if cursor != "" {
		request["cursor"] = cursor
	}

	filter := map[string]any{}
	if len(f.Authors) > 0 {
		filter["authors"] = f.Authors
	}
	if f.SearchQuery != "" {
		filter["searchQuery"] = f.SearchQuery
	}
	if len(f.Tags) > 0 {
		filter["metadata"] = map[string]any{"tags": map[string]any{"oneOf": f.Tags}}
	}
	if len(f.Kinds) > 0 {
		kinds := make([]string, len(f.Kinds))
		for i, k := range f.Kinds {
			kinds[i] = postKindName(k)
		}
		filter["postTypes"] = kinds
	}
	if len(filter) > 0 {
		request["filter"] = filter
	}
	return request
}

func pageSizeName(size domain.PageSize) string {
	if size == domain.PageSizeFifty {
		return "FIFTY"
	}
	return "TEN"
}

func postKindName(k domain.PostKind) string {
	switch k {
	case domain.PostKindComment:
		return "COMMENT"
	case domain.PostKindQuote:
		return "QUOTE"
	case domain.PostKindRepost:
		return "REPOST"
	default:
		return "ROOT"
	}
}

package kakao

import (
	"strconv"

	"github.com/goliatone/go-accounts/social"
)

// Kakao nests identity under kakao_account; the display name lives at
// kakao_account.profile.nickname.
type kakaoUserInfo struct {
	ID      int64 `json:"id"`
	Account struct {
		Email           string `json:"email"`
		IsEmailVerified bool   `json:"is_email_verified"`
		Profile         struct {
			Nickname string `json:"nickname"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

func mapProfile(info *kakaoUserInfo) *social.Profile {
	if info == nil {
		return nil
	}

	return &social.Profile{
		ProviderUserID: strconv.FormatInt(info.ID, 10),
		Provider:       "kakao",
		Email:          info.Account.Email,
		EmailVerified:  info.Account.IsEmailVerified,
		Name:           info.Account.Profile.Nickname,
		Raw: map[string]any{
			"id":       info.ID,
			"email":    info.Account.Email,
			"nickname": info.Account.Profile.Nickname,
		},
	}
}

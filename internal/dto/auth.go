package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Netlink  string `json:"netlink" binding:"required,min=2,max=64"`
	Name     string `json:"name" binding:"required,max=128"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Netlink  string `json:"netlink" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenPair 令牌对响应
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserInfo 当前用户信息
type UserInfo struct {
	UserID  string `json:"userId"`
	Netlink string `json:"netlink"`
	Name    string `json:"name"`
}

package api

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kurihiro0119/github-user-search/internal/config"
)

// GitHubProxy returns a handler that forwards requests under the local
// GitHub proxy prefix to the real API host, stripping the prefix. Mounted
// only in development, so local clients can target a same-origin path.
func GitHubProxy(upstream string) (gin.HandlerFunc, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, err
	}

	proxy := &httputil.ReverseProxy{
		Director: func(req *http.Request) {
			req.URL.Scheme = target.Scheme
			req.URL.Host = target.Host
			req.Host = target.Host
			req.URL.Path = strings.TrimPrefix(req.URL.Path, config.GitHubProxyPrefix)
			if req.URL.Path == "" {
				req.URL.Path = "/"
			}
		},
	}

	return func(c *gin.Context) {
		proxy.ServeHTTP(c.Writer, c.Request)
	}, nil
}

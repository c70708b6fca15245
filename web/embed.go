// Package web フロントエンドの静的ファイルをバイナリに埋め込む
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var assets embed.FS

// StaticFS 埋め込んだstatic/配下をhttp.FileSystemとして返す
func StaticFS() (http.FileSystem, error) {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}
	return http.FS(sub), nil
}

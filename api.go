package mandel

//go:generate irpc $GOFILE

// ImgProvider hands out a finished render.
type ImgProvider interface {
	GetImage() (Buffer, error)
}

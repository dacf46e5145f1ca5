package render

import (
	"fmt"
	"image"
	"image/color"
	stdpalette "image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"sort"
	"sync"
)

type frameResult struct {
	Index    int
	Paletted *image.Paletted
	Err      error
}

// Animate stitches PNG frames into a looping GIF. delay is per frame, in
// hundredths of a second. The palette comes from the last frame.
func Animate(pngPaths []string, gifPath string, delay int) error {
	if len(pngPaths) == 0 {
		return fmt.Errorf("animate: no frames")
	}

	last, err := openPNG(pngPaths[len(pngPaths)-1])
	if err != nil {
		return err
	}
	pal := generatePalette(last)

	resultCh := make(chan frameResult, len(pngPaths))
	var wg sync.WaitGroup

	for index, fname := range pngPaths {
		wg.Add(1)
		go convertToPaletted(index, fname, pal, resultCh, &wg)
	}

	wg.Wait()
	close(resultCh)

	var frameResults []frameResult
	for result := range resultCh {
		if result.Err != nil {
			return result.Err
		}
		frameResults = append(frameResults, result)
	}

	sort.Slice(frameResults, func(i, j int) bool {
		return frameResults[i].Index < frameResults[j].Index
	})

	anim := &gif.GIF{}
	for _, result := range frameResults {
		anim.Image = append(anim.Image, result.Paletted)
		anim.Delay = append(anim.Delay, delay)
	}

	outFile, err := os.Create(gifPath)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(outFile, anim); err != nil {
		outFile.Close()
		return fmt.Errorf("encode %s: %w", gifPath, err)
	}
	return outFile.Close()
}

func convertToPaletted(
	index int,
	fname string,
	pal []color.Color,
	resultCh chan<- frameResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()
	img, err := openPNG(fname)
	if err != nil {
		resultCh <- frameResult{Index: index, Err: err}
		return
	}
	palettedImage := image.NewPaletted(img.Bounds(), pal)
	draw.Draw(palettedImage, img.Bounds(), img, image.Point{}, draw.Over)
	resultCh <- frameResult{
		Index:    index,
		Paletted: palettedImage,
	}
}

func generatePalette(img image.Image) []color.Color {
	paletted := image.NewPaletted(img.Bounds(), stdpalette.Plan9)
	draw.Draw(paletted, img.Bounds(), img, image.Point{}, draw.Over)
	return paletted.Palette
}

func openPNG(fname string) (image.Image, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fname, err)
	}
	return img, nil
}

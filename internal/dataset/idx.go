package dataset

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const (
	idxImageMagic = 2051
	idxLabelMagic = 2049

	// maxIDXBytes bounds the payload a header may announce (MNIST's
	// training images are about 47 MB).
	maxIDXBytes = 1 << 30
)

// MNIST file names inside a data directory.
const (
	TrainImagesFile = "train-images-idx3-ubyte"
	TrainLabelsFile = "train-labels-idx1-ubyte"
	TestImagesFile  = "t10k-images-idx3-ubyte"
	TestLabelsFile  = "t10k-labels-idx1-ubyte"
)

// LoadMNIST reads an images/labels IDX pair from dir.
//
// Pixels are rescaled from [0, 255] to [-1, 1]. maxSamples > 0 keeps only the
// first maxSamples examples.
func LoadMNIST(dir, imagesFile, labelsFile string, maxSamples int) (Dataset, error) {
	images, cols, err := readIDXImagesFile(filepath.Join(dir, imagesFile), maxSamples)
	if err != nil {
		return Dataset{}, err
	}
	labels, err := readIDXLabelsFile(filepath.Join(dir, labelsFile), maxSamples)
	if err != nil {
		return Dataset{}, err
	}
	if len(images) != len(labels)*cols {
		return Dataset{}, errors.Errorf("dataset: %d images but %d labels", len(images)/cols, len(labels))
	}

	data := make([]float64, len(images))
	for i, px := range images {
		data[i] = float64(px)/255.0*2 - 1
	}
	y := make([]int, len(labels))
	for i, l := range labels {
		y[i] = int(l)
	}
	return Dataset{X: mat.NewDense(len(labels), cols, data), Y: y}, nil
}

func readIDXImagesFile(filename string, maxSamples int) ([]byte, int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0, errors.Wrap(err, "dataset: open images")
	}
	defer file.Close()

	return ReadIDXImages(file, maxSamples)
}

func readIDXLabelsFile(filename string, maxSamples int) ([]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "dataset: open labels")
	}
	defer file.Close()

	return ReadIDXLabels(file, maxSamples)
}

// ReadIDXImages reads an image file in IDX format.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes
//	number of cols: 4 bytes
//	pixel data: unsigned bytes (0-255)
//
// Returns the pixels of all images back to back and the pixel count per image.
func ReadIDXImages(r io.Reader, maxSamples int) ([]byte, int, error) {
	var header [4]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, 0, errors.Wrap(err, "dataset: read image header")
	}
	if header[0] != idxImageMagic {
		return nil, 0, errors.Errorf("dataset: invalid magic number: got %d, want %d", header[0], idxImageMagic)
	}

	numImages := int(header[1])
	if maxSamples > 0 {
		numImages = min(numImages, maxSamples)
	}
	imageSize := int64(header[2]) * int64(header[3])
	if numImages == 0 || imageSize == 0 {
		return nil, 0, errors.New("dataset: idx image file is empty")
	}
	total := int64(numImages) * imageSize
	if total > maxIDXBytes {
		return nil, 0, errors.Errorf("dataset: header announces %d images of %dx%d pixels, over the %d byte limit",
			numImages, header[2], header[3], maxIDXBytes)
	}

	pixels := make([]byte, total)
	if _, err := io.ReadFull(r, pixels); err != nil {
		return nil, 0, errors.Wrap(err, "dataset: read pixels")
	}
	return pixels, int(imageSize), nil
}

// ReadIDXLabels reads a label file in IDX format.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes
func ReadIDXLabels(r io.Reader, maxSamples int) ([]byte, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, errors.Wrap(err, "dataset: read label header")
	}
	if header[0] != idxLabelMagic {
		return nil, errors.Errorf("dataset: invalid magic number: got %d, want %d", header[0], idxLabelMagic)
	}

	numLabels := int(header[1])
	if maxSamples > 0 {
		numLabels = min(numLabels, maxSamples)
	}
	if numLabels > maxIDXBytes {
		return nil, errors.Errorf("dataset: header announces %d labels, over the %d byte limit", numLabels, maxIDXBytes)
	}
	labels := make([]byte, numLabels)
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, errors.Wrap(err, "dataset: read labels")
	}
	return labels, nil
}

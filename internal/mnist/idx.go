// Package mnist loads the MNIST handwritten-digit dataset from IDX files
// and converts it into training samples for the network.
package mnist

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// IDX magic numbers.
const (
	imageMagic = 2051 // 0x00000803: unsigned bytes, 3 dimensions
	labelMagic = 2049 // 0x00000801: unsigned bytes, 1 dimension
)

// Canonical dataset file names.
const (
	TrainImagesFile = "train-images-idx3-ubyte"
	TrainLabelsFile = "train-labels-idx1-ubyte"
	TestImagesFile  = "t10k-images-idx3-ubyte"
	TestLabelsFile  = "t10k-labels-idx1-ubyte"
)

// Dataset is one split of MNIST: images with their labels.
type Dataset struct {
	Rows   int
	Cols   int
	Images [][]byte // one image per entry, Rows*Cols pixels (0-255)
	Labels []byte   // one digit (0-9) per image
}

// Len returns the number of images.
func (d *Dataset) Len() int {
	return len(d.Images)
}

// LoadDataset reads one split from an IDX image file and its matching
// label file, validating magic numbers and that counts agree.
func LoadDataset(imagePath, labelPath string) (*Dataset, error) {
	rows, cols, images, err := readIDXImages(imagePath)
	if err != nil {
		return nil, errors.Wrapf(err, "read images from %s", imagePath)
	}

	labels, err := readIDXLabels(labelPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read labels from %s", labelPath)
	}

	if len(labels) != len(images) {
		return nil, errors.Newf("label count %d does not match image count %d", len(labels), len(images))
	}

	return &Dataset{Rows: rows, Cols: cols, Images: images, Labels: labels}, nil
}

// LoadPair loads the train and test splits from dir using the canonical
// file names.
func LoadPair(dir string) (train, test *Dataset, err error) {
	train, err = LoadDataset(filepath.Join(dir, TrainImagesFile), filepath.Join(dir, TrainLabelsFile))
	if err != nil {
		return nil, nil, err
	}
	test, err = LoadDataset(filepath.Join(dir, TestImagesFile), filepath.Join(dir, TestLabelsFile))
	if err != nil {
		return nil, nil, err
	}
	if train.Rows != test.Rows || train.Cols != test.Cols {
		return nil, nil, errors.Newf("train image size %dx%d does not match test image size %dx%d",
			train.Rows, train.Cols, test.Rows, test.Cols)
	}
	return train, test, nil
}

// readIDXImages reads an MNIST image file in IDX format.
//
// Layout:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
func readIDXImages(path string) (rows, cols int, images [][]byte, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, err
	}
	defer file.Close()

	var magic uint32
	if err := binary.Read(file, binary.BigEndian, &magic); err != nil {
		return 0, 0, nil, fmt.Errorf("read magic: %w", err)
	}
	if magic != imageMagic {
		return 0, 0, nil, fmt.Errorf("invalid image magic number: got %d, want %d", magic, imageMagic)
	}

	var numImages, numRows, numCols uint32
	if err := binary.Read(file, binary.BigEndian, &numImages); err != nil {
		return 0, 0, nil, err
	}
	if err := binary.Read(file, binary.BigEndian, &numRows); err != nil {
		return 0, 0, nil, err
	}
	if err := binary.Read(file, binary.BigEndian, &numCols); err != nil {
		return 0, 0, nil, err
	}

	// The declared pixel bytes must fit in the file before the header is
	// trusted with any allocation; the size math stays in int64 so hostile
	// dimensions cannot wrap.
	info, err := file.Stat()
	if err != nil {
		return 0, 0, nil, err
	}
	imageSize := int64(numRows) * int64(numCols)
	pixelBytes := info.Size() - 16
	if imageSize*int64(numImages) > pixelBytes {
		return 0, 0, nil, fmt.Errorf("header declares %d images of %d pixels, file holds %d bytes",
			numImages, imageSize, pixelBytes)
	}

	images = make([][]byte, numImages)
	for i := range images {
		images[i] = make([]byte, int(imageSize))
		if _, err := io.ReadFull(file, images[i]); err != nil {
			return 0, 0, nil, fmt.Errorf("read image %d: %w", i, err)
		}
	}

	return int(numRows), int(numCols), images, nil
}

// readIDXLabels reads an MNIST label file in IDX format.
//
// Layout:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func readIDXLabels(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var magic uint32
	if err := binary.Read(file, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if magic != labelMagic {
		return nil, fmt.Errorf("invalid label magic number: got %d, want %d", magic, labelMagic)
	}

	var numLabels uint32
	if err := binary.Read(file, binary.BigEndian, &numLabels); err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if int64(numLabels) > info.Size()-8 {
		return nil, fmt.Errorf("header declares %d labels, file holds %d bytes", numLabels, info.Size()-8)
	}

	labels := make([]byte, numLabels)
	if _, err := io.ReadFull(file, labels); err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}

	return labels, nil
}

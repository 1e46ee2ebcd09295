package storage

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/webgrowth/facetfilter/pkg/content"
	"github.com/webgrowth/facetfilter/pkg/types"
)

const facetsFile = "facets.json"
const settingsFile = "settings.json"
const documentsFile = "documents.json.gz"

func (d *DiskStorage) LoadFacets(output *[]*types.FacetDefinition) error {
	return d.LoadJson(output, facetsFile)
}

func (d *DiskStorage) SaveFacets(facets []*types.FacetDefinition) error {
	return d.SaveJson(facets, facetsFile)
}

func (d *DiskStorage) LoadSettings(output *types.Settings) error {
	return d.LoadJson(output, settingsFile)
}

func (d *DiskStorage) SaveSettings(settings *types.Settings) error {
	return d.SaveJson(settings, settingsFile)
}

func (d *DiskStorage) LoadDocuments(output *[]*content.Document) error {
	return d.LoadGzippedJson(output, documentsFile)
}

func (d *DiskStorage) SaveDocuments(documents []*content.Document) error {
	return d.SaveGzippedJson(documents, documentsFile)
}

func (d *DiskStorage) SaveJson(data any, name string) error {
	fileName, tmpFileName := d.GetFileName(name)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(file)
	err = enc.Encode(data)
	file.Close()
	if err != nil {
		return err
	}

	return os.Rename(tmpFileName, fileName)
}

func (d *DiskStorage) LoadJson(data any, filename string) error {
	name, _ := d.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	err = json.NewDecoder(file).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (d *DiskStorage) SaveGzippedJson(data any, filename string) error {
	fileName, tmpFileName := d.GetFileName(filename)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	defer file.Close()

	zipWriter := gzip.NewWriter(file)
	enc := json.NewEncoder(zipWriter)
	if err = enc.Encode(data); err != nil {
		zipWriter.Close()
		return err
	}
	if err = zipWriter.Close(); err != nil {
		return err
	}

	return os.Rename(tmpFileName, fileName)
}

func (d *DiskStorage) LoadGzippedJson(data any, filename string) error {
	name, _ := d.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	err = json.NewDecoder(zipReader).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

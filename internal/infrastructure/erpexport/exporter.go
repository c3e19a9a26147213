// Package erpexport genera el XML de intercambio con el ERP corporativo para
// solicitudes de abastecimiento. El documento lleva en la raíz un digest
// SHA-256 calculado sobre su forma canónica (C14N) sin el atributo de digest;
// el ERP receptor repite el cálculo para verificar que el archivo no se
// alteró en tránsito.
package erpexport

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jdruizm/Botica-api/internal/application/dto"
	"github.com/jdruizm/Botica-api/internal/application/procurement"
)

// Identificadores del formato de intercambio.
const (
	Namespace     = "urn:botica:erp:purchase-request"
	FormatVersion = "1.0"
	AlgSHA256     = "http://www.w3.org/2001/04/xmlenc#sha256"

	attrDigest    = "digest"
	attrDigestAlg = "digestAlgorithm"
)

var _ procurement.RequestXMLExporter = (*Exporter)(nil)

// Exporter construye el documento de intercambio con etree y le estampa el
// digest canónico.
type Exporter struct{}

// NewExporter crea el exportador.
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportRequestXML genera el XML de la solicitud y devuelve sus bytes.
func (e *Exporter) ExportRequestXML(req *dto.PurchaseRequestResponse) ([]byte, error) {
	if req == nil {
		return nil, fmt.Errorf("erpexport: solicitud vacía")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("PurchaseRequest")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("version", FormatVersion)
	root.CreateAttr("id", req.ID)
	root.CreateAttr("generated", time.Now().UTC().Format(time.RFC3339))

	shop := root.CreateElement("Shop")
	shop.CreateAttr("id", req.ShopID)
	shop.SetText(req.ShopName)

	warehouse := root.CreateElement("Warehouse")
	warehouse.CreateAttr("id", req.WarehouseID)
	warehouse.SetText(req.WarehouseName)

	root.CreateElement("Priority").SetText(req.Priority)
	root.CreateElement("Status").SetText(req.Status)
	root.CreateElement("CreatedAt").SetText(req.CreatedAt.UTC().Format(time.RFC3339))
	if req.Notes != "" {
		root.CreateElement("Notes").SetText(req.Notes)
	}
	if req.ApprovedAt != nil {
		approval := root.CreateElement("Approval")
		approval.CreateAttr("by", req.ApprovedBy)
		approval.CreateElement("At").SetText(req.ApprovedAt.UTC().Format(time.RFC3339))
	}

	lines := root.CreateElement("Lines")
	lines.CreateAttr("count", fmt.Sprintf("%d", len(req.Items)))
	for i, it := range req.Items {
		line := lines.CreateElement("Line")
		line.CreateAttr("number", fmt.Sprintf("%d", i+1))
		med := line.CreateElement("Medicine")
		med.CreateAttr("id", it.MedicineID)
		med.SetText(it.MedicineName)
		line.CreateElement("Quantity").SetText(it.QuantityRequested.String())
	}

	doc.Indent(2)

	// Digest sobre la forma canónica del documento sin el atributo de digest.
	withoutDigest, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("erpexport: serializar documento: %w", err)
	}
	digest, err := canonicalDigest(withoutDigest)
	if err != nil {
		return nil, err
	}
	root.CreateAttr(attrDigestAlg, AlgSHA256)
	root.CreateAttr(attrDigest, digest)

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("erpexport: serializar documento: %w", err)
	}
	return out, nil
}

// Verify comprueba el digest de un documento exportado. Devuelve error si el
// documento no parsea, no trae digest o el digest no corresponde al contenido.
func Verify(data []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("erpexport: parsear documento: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("erpexport: documento sin raíz")
	}
	attr := root.SelectAttr(attrDigest)
	if attr == nil || attr.Value == "" {
		return fmt.Errorf("erpexport: documento sin digest")
	}
	declared := attr.Value

	root.RemoveAttr(attrDigest)
	root.RemoveAttr(attrDigestAlg)
	stripped, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("erpexport: serializar documento: %w", err)
	}
	computed, err := canonicalDigest(stripped)
	if err != nil {
		return err
	}
	if computed != declared {
		return fmt.Errorf("erpexport: digest no corresponde al contenido")
	}
	return nil
}

// canonicalDigest canonicaliza el XML (C14N) y devuelve el SHA-256 en Base64.
func canonicalDigest(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("erpexport: canonicalizar documento: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

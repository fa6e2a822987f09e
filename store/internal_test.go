package store

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// --- validateKey Tests ---

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     PK
		wantErr bool
	}{
		{"nil key", nil, true},
		{"empty key", PK{}, true},
		{"string", PK{"id": &types.AttributeValueMemberS{Value: "a"}}, false},
		{"empty string", PK{"id": &types.AttributeValueMemberS{Value: ""}}, true},
		{"number", PK{"id": &types.AttributeValueMemberN{Value: "1"}}, false},
		{"empty number", PK{"id": &types.AttributeValueMemberN{Value: ""}}, true},
		{"binary", PK{"id": &types.AttributeValueMemberB{Value: []byte{1}}}, false},
		{"empty binary", PK{"id": &types.AttributeValueMemberB{}}, true},
		{"bool", PK{"id": &types.AttributeValueMemberBOOL{Value: true}}, true},
		{
			"composite with one empty part",
			PK{
				"pk": &types.AttributeValueMemberS{Value: "a"},
				"sk": &types.AttributeValueMemberS{Value: ""},
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err != ErrInvalidKey {
				t.Errorf("expected ErrInvalidKey, got %v", err)
			}
		})
	}
}

// --- unmarshalItem Tests ---

func TestUnmarshalItem_Full(t *testing.T) {
	s := &Store{}
	raw := map[string]types.AttributeValue{
		"id":          &types.AttributeValueMemberN{Value: "1"},
		"updated_at":  &types.AttributeValueMemberS{Value: "2024-01-02T00:00:00Z"},
		"entity_ref":  &types.AttributeValueMemberS{Value: "product#1"},
		"entity_type": &types.AttributeValueMemberS{Value: "product"},
	}

	item := s.unmarshalItem(raw)

	if item.UpdatedAt != "2024-01-02T00:00:00Z" {
		t.Errorf("expected UpdatedAt '2024-01-02T00:00:00Z', got %q", item.UpdatedAt)
	}
	if item.EntityRef != "product#1" {
		t.Errorf("expected EntityRef 'product#1', got %q", item.EntityRef)
	}
	if item.EntityType != "product" {
		t.Errorf("expected EntityType 'product', got %q", item.EntityType)
	}
	if item.Raw == nil {
		t.Error("expected Raw to be set")
	}
}

func TestUnmarshalItem_Minimal(t *testing.T) {
	s := &Store{}
	raw := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: "x"},
	}

	item := s.unmarshalItem(raw)

	if item.UpdatedAt != "" || item.EntityRef != "" || item.EntityType != "" {
		t.Errorf("expected empty managed fields, got %+v", item)
	}
	if len(item.Raw) != 1 {
		t.Errorf("expected Raw to keep 1 attribute, got %d", len(item.Raw))
	}
}

func TestUnmarshalItem_WrongTypes(t *testing.T) {
	s := &Store{}
	raw := map[string]types.AttributeValue{
		"entity_ref": &types.AttributeValueMemberN{Value: "1"},
		"updated_at": &types.AttributeValueMemberBOOL{Value: true},
	}

	item := s.unmarshalItem(raw)

	if item.EntityRef != "" || item.UpdatedAt != "" {
		t.Errorf("expected wrongly typed fields to be ignored, got %+v", item)
	}
}

// --- Config Tests ---

func TestConfigValidate_Defaults(t *testing.T) {
	cfg := Config{}
	cfg.validate()

	if cfg.TablePrefix != "stockroom_" {
		t.Errorf("expected default TablePrefix, got %q", cfg.TablePrefix)
	}
}

func TestConfigValidate_PreservesCustomPrefix(t *testing.T) {
	cfg := Config{TablePrefix: "test_"}
	cfg.validate()

	if cfg.TablePrefix != "test_" {
		t.Errorf("expected custom TablePrefix preserved, got %q", cfg.TablePrefix)
	}
}

// Package doctype enumerates the supported document kinds. Each kind carries
// its persisted name, its regeneration form fields and the fixed skeleton used
// to rebuild the content region. Adding a kind means adding a constant and a
// definition entry; unknown names are rejected at parse time instead of
// silently selecting nothing.
package doctype

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a name does not match a supported kind.
var ErrUnknownKind = errors.New("doctype: unknown document kind")

// Kind identifies a document kind.
type Kind int

const (
	Balaustre Kind = iota + 1
	Edital
	Certificado
	Convite
)

// Field is a discrete form input that feeds one token slot of a skeleton.
type Field struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Multiline bool   `json:"multiline,omitempty"`
}

// Definition describes a kind.
type Definition struct {
	Kind     Kind
	Name     string
	Title    string
	Fields   []Field
	Skeleton string
}

var definitions = map[Kind]Definition{
	Balaustre: {
		Kind:  Balaustre,
		Name:  "balaustre",
		Title: "Balaústre",
		Fields: []Field{
			{Key: "Veneravel", Label: "Venerável Mestre"},
			{Key: "PrimeiroVigilante", Label: "1º Vigilante"},
			{Key: "SegundoVigilante", Label: "2º Vigilante"},
			{Key: "Secretario", Label: "Secretário"},
			{Key: "HoraInicio", Label: "Hora de abertura"},
			{Key: "BalaustreAnterior", Label: "Balaústre anterior", Multiline: true},
			{Key: "ExpedienteRecebido", Label: "Expediente recebido", Multiline: true},
			{Key: "ExpedienteExpedido", Label: "Expediente expedido", Multiline: true},
			{Key: "OrdemDoDia", Label: "Ordem do dia", Multiline: true},
			{Key: "TempoInstrucao", Label: "Tempo de instrução", Multiline: true},
			{Key: "ValorTronco", Label: "Tronco de beneficência"},
			{Key: "PalavraBemOrdem", Label: "Palavra a bem da Ordem", Multiline: true},
			{Key: "HoraEncerramento", Label: "Hora de encerramento"},
		},
		Skeleton: skeleton(
			section("ABERTURA:", "Aos ", slot("DataSessaoExtenso"), ", às ", slot("HoraInicio"),
				", reuniram-se os Obreiros da ", slot("NomeLoja"), ", sob o malhete do Venerável Mestre ",
				slot("Veneravel"), ", tendo como Primeiro Vigilante ", slot("PrimeiroVigilante"),
				" e Segundo Vigilante ", slot("SegundoVigilante"), "."),
			section("BALAÚSTRE:", "Foi lido e aprovado o balaústre da sessão anterior: ", slot("BalaustreAnterior")),
			section("EXPEDIENTE RECEBIDO:", slot("ExpedienteRecebido")),
			section("EXPEDIENTE EXPEDIDO:", slot("ExpedienteExpedido")),
			section("ORDEM DO DIA:", slot("OrdemDoDia")),
			section("TEMPO DE INSTRUÇÃO:", slot("TempoInstrucao")),
			section("TRONCO DE BENEFICÊNCIA:", "O Tronco de Beneficência rendeu ", slot("ValorTronco"), "."),
			section("PALAVRA A BEM DA ORDEM:", slot("PalavraBemOrdem")),
			section("ENCERRAMENTO:", "Nada mais havendo a tratar, o Venerável Mestre encerrou a sessão às ",
				slot("HoraEncerramento"), ". Eu, ", slot("Secretario"), ", Secretário, lavrei o presente balaústre."),
		),
	},
	Edital: {
		Kind:  Edital,
		Name:  "edital",
		Title: "Edital de Convocação",
		Fields: []Field{
			{Key: "Veneravel", Label: "Venerável Mestre"},
			{Key: "TipoSessao", Label: "Tipo de sessão"},
			{Key: "DataSessao", Label: "Data da sessão"},
			{Key: "HoraInicio", Label: "Horário"},
			{Key: "OrdemDoDia", Label: "Ordem do dia", Multiline: true},
		},
		Skeleton: skeleton(
			paragraph("O Venerável Mestre ", slot("Veneravel"), " da ", slot("NomeLoja"),
				" convoca os Irmãos do Quadro para a sessão ", slot("TipoSessao"), " a realizar-se em ",
				slot("DataSessao"), ", às ", slot("HoraInicio"), ", no Templo situado em ", slot("EnderecoTemplo"), "."),
			section("ORDEM DO DIA:", slot("OrdemDoDia")),
			paragraph("Oriente de ", slot("Oriente"), ", ", slot("DataEmissao"), "."),
		),
	},
	Certificado: {
		Kind:  Certificado,
		Name:  "certificado",
		Title: "Certificado",
		Fields: []Field{
			{Key: "NomeIrmao", Label: "Nome do Irmão"},
			{Key: "TipoSessao", Label: "Tipo de sessão"},
			{Key: "DataSessao", Label: "Data da sessão"},
			{Key: "Observacoes", Label: "Observações", Multiline: true},
		},
		Skeleton: skeleton(
			paragraph("Certificamos que o Irmão ", slot("NomeIrmao"), " participou da sessão ",
				slot("TipoSessao"), " realizada em ", slot("DataSessao"), " na ", slot("NomeLoja"), "."),
			paragraph(slot("Observacoes")),
		),
	},
	Convite: {
		Kind:  Convite,
		Name:  "convite",
		Title: "Convite",
		Fields: []Field{
			{Key: "Convidado", Label: "Convidado"},
			{Key: "Evento", Label: "Evento"},
			{Key: "DataSessao", Label: "Data"},
			{Key: "HoraInicio", Label: "Horário"},
		},
		Skeleton: skeleton(
			paragraph("A ", slot("NomeLoja"), " tem a honra de convidar ", slot("Convidado"),
				" para ", slot("Evento"), ", a realizar-se em ", slot("DataSessao"), ", às ",
				slot("HoraInicio"), ", no Templo situado em ", slot("EnderecoTemplo"), "."),
		),
	},
}

// All returns every supported kind in declaration order.
func All() []Kind {
	return []Kind{Balaustre, Edital, Certificado, Convite}
}

// Parse resolves a persisted kind name.
func Parse(name string) (Kind, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	for _, kind := range All() {
		if definitions[kind].Name == trimmed {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MustParse panics on unknown names. Intended for tests and static wiring.
func MustParse(name string) Kind {
	kind, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return kind
}

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool {
	_, ok := definitions[k]
	return ok
}

// String returns the persisted name.
func (k Kind) String() string {
	if def, ok := definitions[k]; ok {
		return def.Name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Definition returns the kind's definition. Invalid kinds yield a zero value.
func (k Kind) Definition() Definition {
	def := definitions[k]
	def.Fields = append([]Field(nil), def.Fields...)
	return def
}

// Skeleton returns the content skeleton markup.
func (k Kind) Skeleton() string {
	return definitions[k].Skeleton
}

// Fields returns the regeneration form fields in display order.
func (k Kind) Fields() []Field {
	return k.Definition().Fields
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

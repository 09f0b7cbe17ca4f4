package manifest

// Field names the semantic columns of a package table. The set is closed:
// anything the sheets carry beyond these is ignored by the engine.
type Field string

const (
	FieldSequenceNumber Field = "sequence_number"
	FieldRoom           Field = "room"
	FieldMeal           Field = "meal"
	FieldSurname        Field = "surname"
	FieldFirstName      Field = "first_name"
	FieldGender         Field = "gender"
	FieldDateOfBirth    Field = "dob"
	FieldDocumentNumber Field = "document_number"
	FieldDocumentExpiry Field = "document_expiry"
	FieldNationalID     Field = "national_id"
	FieldVisa           Field = "visa"
	FieldFlight         Field = "flight"
	FieldPrice          Field = "price"
	FieldComment        Field = "comment"
	FieldManager        Field = "manager"
	FieldTrain          Field = "train"
	FieldClientPhone    Field = "client_phone"
	FieldSource         Field = "source"
	FieldAmountPaid     Field = "amount_paid"
	FieldRegion         Field = "region"
)

// ColumnMap maps semantic fields to 0-based column indices. Not every field
// needs to be present; Usable reports whether the map carries enough to
// drive allocation.
type ColumnMap map[Field]int

// Col returns the column index for a field and whether it is mapped.
func (m ColumnMap) Col(f Field) (int, bool) {
	idx, ok := m[f]
	return idx, ok
}

// Usable reports whether the map can drive allocation: it must locate the
// room column and at least one of surname, first name or gender.
func (m ColumnMap) Usable() bool {
	if _, ok := m[FieldRoom]; !ok {
		return false
	}
	_, hasSurname := m[FieldSurname]
	_, hasFirst := m[FieldFirstName]
	_, hasGender := m[FieldGender]
	return hasSurname || hasFirst || hasGender
}

// headerFieldOrder fixes the priority in which fields claim a header cell.
// Order matters: "Document number" must go to document_number before the
// generic "number" keyword of sequence_number can grab it.
var headerFieldOrder = []Field{
	FieldSurname,
	FieldFirstName,
	FieldGender,
	FieldRoom,
	FieldMeal,
	FieldDateOfBirth,
	FieldDocumentNumber,
	FieldDocumentExpiry,
	FieldNationalID,
	FieldVisa,
	FieldFlight,
	FieldPrice,
	FieldComment,
	FieldManager,
	FieldTrain,
	FieldClientPhone,
	FieldSource,
	FieldAmountPaid,
	FieldRegion,
	FieldSequenceNumber,
}

// headerKeywords maps each field to the header spellings seen in live
// manifests. Matching is first-keyword-wins per column; English and Russian
// variants both occur, often in the same sheet.
var headerKeywords = map[Field][]string{
	FieldSurname:        {"last name", "lastname", "фамилия", "names"},
	FieldFirstName:      {"first name", "firstname", "имя"},
	FieldGender:         {"gender", "sex", "пол"},
	FieldRoom:           {"type of room", "room", "тип номера", "комната"},
	FieldMeal:           {"meal", "meal a day", "питание"},
	FieldDateOfBirth:    {"date of birth", "dob", "дата рождения", "д.р."},
	FieldDocumentNumber: {"document number", "passport", "номер паспорта", "passport number", "doc num"},
	FieldDocumentExpiry: {"document expiration", "expiration", "expiry", "срок действия", "годен до", "valid until"},
	FieldNationalID:     {"iin", "иин"},
	FieldVisa:           {"visa", "виза"},
	FieldFlight:         {"avia", "авиа", "рейс", "flight"},
	FieldPrice:          {"price", "цена", "стоимость"},
	FieldComment:        {"comment", "комментарий", "примечание", "сomment"},
	FieldManager:        {"manager", "менеджер"},
	FieldTrain:          {"train", "поезд", "жд"},
	FieldClientPhone:    {"contact", "phone", "телефон", "номер", "контакты"},
	FieldSource:         {"source", "источник"},
	FieldAmountPaid:     {"paid", "оплачено", "внесено"},
	FieldRegion:         {"region", "регион"},
	FieldSequenceNumber: {"№", "num", "number", "n", "#"},
}

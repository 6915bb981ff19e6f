package entities

// Capability describes which HTTP verbs a resource exposes.
type Capability int

const (
	// CapabilityFull exposes GET, POST, PUT and DELETE.
	CapabilityFull Capability = iota
	// CapabilityReadDelete exposes only GET and DELETE. Contacts are
	// managed client-side in the original frontend, so the server never
	// grew create/update routes for them.
	CapabilityReadDelete
)

// Resource describes one file-backed collection and its API surface.
// Slugs and user-facing messages keep the Italian naming of the app.
type Resource struct {
	Name       string
	Slug       string
	File       string
	Capability Capability

	// NotFoundMessage and WriteFailedMessage are the resource-specific
	// error strings returned in the {error} envelope.
	NotFoundMessage    string
	WriteFailedMessage string
}

// Resources is the fixed registry of collections. File names are fixed at
// startup; there is no dynamic resource registration.
var Resources = []Resource{
	{
		Name:               "deadlines",
		Slug:               "scadenze",
		File:               "scadenze.json",
		Capability:         CapabilityFull,
		NotFoundMessage:    "Scadenza non trovata",
		WriteFailedMessage: "Errore nel salvataggio della scadenza",
	},
	{
		Name:               "properties",
		Slug:               "proprieta",
		File:               "proprieta.json",
		Capability:         CapabilityFull,
		NotFoundMessage:    "Proprietà non trovata",
		WriteFailedMessage: "Errore nel salvataggio della proprietà",
	},
	{
		Name:               "documents",
		Slug:               "documenti",
		File:               "documenti.json",
		Capability:         CapabilityFull,
		NotFoundMessage:    "Documento non trovato",
		WriteFailedMessage: "Errore nel salvataggio del documento",
	},
	{
		Name:               "expenses",
		Slug:               "spese",
		File:               "spese.json",
		Capability:         CapabilityFull,
		NotFoundMessage:    "Spesa non trovata",
		WriteFailedMessage: "Errore nel salvataggio della spesa",
	},
	{
		Name:               "events",
		Slug:               "eventi",
		File:               "eventi.json",
		Capability:         CapabilityFull,
		NotFoundMessage:    "Evento non trovato",
		WriteFailedMessage: "Errore nel salvataggio dell'evento",
	},
	{
		Name:               "contacts",
		Slug:               "contatti",
		File:               "contatti.json",
		Capability:         CapabilityReadDelete,
		NotFoundMessage:    "Contatto non trovato",
		WriteFailedMessage: "Errore nel salvataggio del contatto",
	},
	{
		Name:               "vehicles",
		Slug:               "veicoli",
		File:               "veicoli.json",
		Capability:         CapabilityFull,
		NotFoundMessage:    "Veicolo non trovato",
		WriteFailedMessage: "Errore nel salvataggio del veicolo",
	},
	{
		Name:               "bookings",
		Slug:               "bookings",
		File:               "bookings.json",
		Capability:         CapabilityFull,
		NotFoundMessage:    "Prenotazione non trovata",
		WriteFailedMessage: "Errore nel salvataggio della prenotazione",
	},
	{
		Name:               "workouts",
		Slug:               "workouts",
		File:               "workouts.json",
		Capability:         CapabilityFull,
		NotFoundMessage:    "Allenamento non trovato",
		WriteFailedMessage: "Errore nel salvataggio dell'allenamento",
	},
}

// ResourceByName looks a resource up in the registry.
func ResourceByName(name string) (Resource, error) {
	for _, res := range Resources {
		if res.Name == name {
			return res, nil
		}
	}
	return Resource{}, ErrResourceNotFound
}

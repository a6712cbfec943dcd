package i18n

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Supported languages, English first as the fallback
var supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(supported)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" resolves the locale from
// the environment; unknown languages leave the current one unchanged.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = Match(SystemLocale())
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// Textf formats the localized text for key with args
func (l *Localization) Textf(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"es": "Español",
	}
}

// Match returns the closest bundled language code for a BCP 47 or POSIX locale string
func Match(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "en"
	}
	_, index, confidence := matcher.Match(language.Make(locale))
	if confidence == language.No {
		return "en"
	}
	base, _ := supported[index].Base()
	return base.String()
}

// SystemLocale returns the locale from the usual POSIX environment variables
func SystemLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:        "Audiobook Reader",
		KeyListen:          "Listen",
		KeyRead:            "Read",
		KeyPlay:            "Play",
		KeyPause:           "Pause",
		KeyNextChapter:     "Next chapter",
		KeyPreviousChapter: "Previous chapter",
		KeySkipForward:     "Forward %d s",
		KeySkipBackward:    "Back %d s",
		KeyMute:            "Mute",
		KeyUnmute:          "Unmute",
		KeyVolume:          "Volume",
		KeySpeed:           "Speed",
		KeyChapters:        "Chapters",
		KeyChapterPosition: "Chapter %d of %d",
		KeyNoChapter:       "Select a chapter",
		KeyLoading:         "Loading...",

		KeyBufferingTitle:   "Buffering...",
		KeyBufferingMessage: "Downloading audio content",
		KeyPlaybackError:    "Playback error",
		KeyErrorGeneric:     "Could not load audio file.",
		KeyErrorAborted:     "Audio download aborted.",
		KeyErrorNetwork:     "Network error while downloading audio. Check your connection.",
		KeyErrorDecode:      "Error decoding audio file. The file may be corrupted.",
		KeyErrorUnsupported: "The audio source could not be opened. Check that the server allows access to it.",
		KeyUnsupportedTitle: "Audio source not supported",

		KeyPage:           "Page",
		KeyOfPages:        "of %d",
		KeyPrevPage:       "Previous page",
		KeyNextPage:       "Next page",
		KeySinglePage:     "Single page",
		KeyContinuous:     "Continuous",
		KeyZoomIn:         "Zoom in",
		KeyZoomOut:        "Zoom out",
		KeyResetZoom:      "Reset zoom",
		KeyFullscreen:     "Fullscreen",
		KeyExitFullscreen: "Exit fullscreen",
		KeyFirstPage:      "First page",
		KeyLastPage:       "Last page",
		KeyLoadingDoc:     "Loading document...",
		KeyDocumentError:  "Could not load the document.",
		KeyDownload:       "Download",
		KeyDownloadSaved:  "Saved to Downloads",
		KeyDownloadFailed: "Download failed",

		KeySettings:      "Settings",
		KeyLanguage:      "Language",
		KeySave:          "Save",
		KeyCancel:        "Cancel",
		KeySettingsSaved: "Settings saved successfully!",

		KeyShortcuts:      "Keyboard shortcuts",
		KeyPlayPause:      "Play or pause",
		KeyVolumeUp:       "Volume up",
		KeyVolumeDown:     "Volume down",
		KeySingleModeOnly: "Single page mode only",
		KeyOr:             "or",
		KeyClose:          "Close",
	}

	l.texts["es"] = map[string]string{
		KeyAppTitle:        "Lector de audiolibros",
		KeyListen:          "Escuchar",
		KeyRead:            "Leer",
		KeyPlay:            "Reproducir",
		KeyPause:           "Pausa",
		KeyNextChapter:     "Capítulo siguiente",
		KeyPreviousChapter: "Capítulo anterior",
		KeySkipForward:     "Adelantar %d s",
		KeySkipBackward:    "Retroceder %d s",
		KeyMute:            "Silenciar",
		KeyUnmute:          "Activar sonido",
		KeyVolume:          "Volumen",
		KeySpeed:           "Velocidad",
		KeyChapters:        "Capítulos",
		KeyChapterPosition: "Capítulo %d de %d",
		KeyNoChapter:       "Selecciona un capítulo",
		KeyLoading:         "Cargando...",

		KeyBufferingTitle:   "Cargando audio...",
		KeyBufferingMessage: "Descargando contenido de audio",
		KeyPlaybackError:    "Error de reproducción",
		KeyErrorGeneric:     "No se pudo cargar el archivo de audio.",
		KeyErrorAborted:     "Descarga de audio cancelada.",
		KeyErrorNetwork:     "Error de red al descargar el audio. Revisa tu conexión.",
		KeyErrorDecode:      "Error al decodificar el audio. El archivo puede estar dañado.",
		KeyErrorUnsupported: "No se pudo abrir la fuente de audio. Comprueba que el servidor permite el acceso.",
		KeyUnsupportedTitle: "Fuente de audio no compatible",

		KeyPage:           "Página",
		KeyOfPages:        "de %d",
		KeyPrevPage:       "Página anterior",
		KeyNextPage:       "Página siguiente",
		KeySinglePage:     "Página única",
		KeyContinuous:     "Continuo",
		KeyZoomIn:         "Acercar",
		KeyZoomOut:        "Alejar",
		KeyResetZoom:      "Restablecer zoom",
		KeyFullscreen:     "Pantalla completa",
		KeyExitFullscreen: "Salir de pantalla completa",
		KeyFirstPage:      "Primera página",
		KeyLastPage:       "Última página",
		KeyLoadingDoc:     "Cargando documento...",
		KeyDocumentError:  "No se pudo cargar el documento.",
		KeyDownload:       "Descargar",
		KeyDownloadSaved:  "Guardado en Descargas",
		KeyDownloadFailed: "Error en la descarga",

		KeySettings:      "Ajustes",
		KeyLanguage:      "Idioma",
		KeySave:          "Guardar",
		KeyCancel:        "Cancelar",
		KeySettingsSaved: "¡Ajustes guardados!",

		KeyShortcuts:      "Atajos de teclado",
		KeyPlayPause:      "Reproducir o pausar",
		KeyVolumeUp:       "Subir volumen",
		KeyVolumeDown:     "Bajar volumen",
		KeySingleModeOnly: "Solo en modo página única",
		KeyOr:             "o",
		KeyClose:          "Cerrar",
	}
}

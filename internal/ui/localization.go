package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyEnterURL          = "enter_url"
	KeyGetInfo           = "get_info"
	KeyLoadFormats       = "load_formats"
	KeyDownload          = "download"
	KeyCancel            = "cancel"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyQuality           = "quality"
	KeyOutputFormat      = "output_format"
	KeyModeVideo         = "mode_video"
	KeyModeAudio         = "mode_audio"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyInvalidURL        = "invalid_url"
	KeyReady             = "ready"
	KeyFetchingInfo      = "fetching_info"
	KeyLoadingFormats    = "loading_formats"
	KeyNoStreams         = "no_streams"
	KeyStreamsHint       = "streams_hint"
	KeySelectedStream    = "selected_stream"
	KeyClearSelection    = "clear_selection"
	KeyDownloadStarted   = "download_started"
	KeyDownloadCompleted = "download_completed"
	KeyDownloadCancelled = "download_cancelled"
	KeyDownloadFailed    = "download_failed"
	KeyShowInFolder      = "show_in_folder"
	KeyOpen              = "open"
	KeyErrorOpeningDir   = "error_opening_folder"
	KeyPlaylistNotice    = "playlist_notice"
	KeyTitle             = "title"
	KeyUploader          = "uploader"
	KeyDuration          = "duration"
	KeyViews             = "views"
	KeyUploadDate        = "upload_date"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
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
	if text, found := l.texts["en"][key]; found {
		return text
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "ytfetch",
		KeyEnterURL:          "Enter video URL (https://youtube.com/watch?v=...)",
		KeyGetInfo:           "Get Info",
		KeyLoadFormats:       "Load Formats",
		KeyDownload:          "Download",
		KeyCancel:            "Cancel",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Output Directory",
		KeyQuality:           "Quality",
		KeyOutputFormat:      "Format",
		KeyModeVideo:         "Video",
		KeyModeAudio:         "Audio Only",
		KeyAutoReveal:        "Show file in folder when done",
		KeySave:              "Save",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeyInvalidURL:        "Invalid URL",
		KeyReady:             "Ready",
		KeyFetchingInfo:      "Fetching video information...",
		KeyLoadingFormats:    "Loading formats...",
		KeyNoStreams:         "No downloadable streams listed",
		KeyStreamsHint:       "Pick a stream to override the quality setting",
		KeySelectedStream:    "Selected stream",
		KeyClearSelection:    "Clear",
		KeyDownloadStarted:   "Download started",
		KeyDownloadCompleted: "Download completed",
		KeyDownloadCancelled: "Download cancelled",
		KeyDownloadFailed:    "Download failed",
		KeyShowInFolder:      "Show in folder",
		KeyOpen:              "Open",
		KeyErrorOpeningDir:   "Error opening folder",
		KeyPlaylistNotice:    "Playlist %q has %d videos; only single videos are downloaded",
		KeyTitle:             "Title",
		KeyUploader:          "Uploader",
		KeyDuration:          "Duration",
		KeyViews:             "Views",
		KeyUploadDate:        "Uploaded",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "ytfetch",
		KeyEnterURL:          "Введите URL видео (https://youtube.com/watch?v=...)",
		KeyGetInfo:           "Информация",
		KeyLoadFormats:       "Загрузить форматы",
		KeyDownload:          "Скачать",
		KeyCancel:            "Отмена",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка загрузки",
		KeyQuality:           "Качество",
		KeyOutputFormat:      "Формат",
		KeyModeVideo:         "Видео",
		KeyModeAudio:         "Только аудио",
		KeyAutoReveal:        "Показать файл в папке после загрузки",
		KeySave:              "Сохранить",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL",
		KeyInvalidURL:        "Неверный URL",
		KeyReady:             "Готово к работе",
		KeyFetchingInfo:      "Получение информации о видео...",
		KeyLoadingFormats:    "Загрузка форматов...",
		KeyNoStreams:         "Нет доступных потоков",
		KeyStreamsHint:       "Выберите поток вместо настройки качества",
		KeySelectedStream:    "Выбранный поток",
		KeyClearSelection:    "Сбросить",
		KeyDownloadStarted:   "Загрузка начата",
		KeyDownloadCompleted: "Загрузка завершена",
		KeyDownloadCancelled: "Загрузка отменена",
		KeyDownloadFailed:    "Ошибка загрузки",
		KeyShowInFolder:      "Показать в папке",
		KeyOpen:              "Открыть",
		KeyErrorOpeningDir:   "Ошибка открытия папки",
		KeyPlaylistNotice:    "Плейлист %q содержит %d видео; скачиваются только отдельные видео",
		KeyTitle:             "Название",
		KeyUploader:          "Автор",
		KeyDuration:          "Длительность",
		KeyViews:             "Просмотры",
		KeyUploadDate:        "Загружено",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "ytfetch",
		KeyEnterURL:          "Digite a URL do vídeo (https://youtube.com/watch?v=...)",
		KeyGetInfo:           "Informações",
		KeyLoadFormats:       "Carregar Formatos",
		KeyDownload:          "Baixar",
		KeyCancel:            "Cancelar",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyDownloadDirectory: "Diretório de Saída",
		KeyQuality:           "Qualidade",
		KeyOutputFormat:      "Formato",
		KeyModeVideo:         "Vídeo",
		KeyModeAudio:         "Somente Áudio",
		KeyAutoReveal:        "Mostrar arquivo na pasta ao concluir",
		KeySave:              "Salvar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyPleaseEnterURL:    "Por favor, digite uma URL",
		KeyInvalidURL:        "URL inválida",
		KeyReady:             "Pronto",
		KeyFetchingInfo:      "Obtendo informações do vídeo...",
		KeyLoadingFormats:    "Carregando formatos...",
		KeyNoStreams:         "Nenhum fluxo disponível",
		KeyStreamsHint:       "Escolha um fluxo para substituir a qualidade",
		KeySelectedStream:    "Fluxo selecionado",
		KeyClearSelection:    "Limpar",
		KeyDownloadStarted:   "Download iniciado",
		KeyDownloadCompleted: "Download concluído",
		KeyDownloadCancelled: "Download cancelado",
		KeyDownloadFailed:    "Falha no download",
		KeyShowInFolder:      "Mostrar na pasta",
		KeyOpen:              "Abrir",
		KeyErrorOpeningDir:   "Erro ao abrir pasta",
		KeyPlaylistNotice:    "A playlist %q tem %d vídeos; apenas vídeos individuais são baixados",
		KeyTitle:             "Título",
		KeyUploader:          "Autor",
		KeyDuration:          "Duração",
		KeyViews:             "Visualizações",
		KeyUploadDate:        "Publicado",
	}
}

package recommend

type seedPaper struct {
	title         string
	description   string
	url           string
	journal       string
	year          int
	citationCount int
}

type seedDataset struct {
	title       string
	description string
	url         string
	publisher   string
	year        int
	dataSize    string
	format      string
}

var seedPapers = []seedPaper{
	{
		title:         "Attention Is All You Need",
		description:   "Introduces the Transformer architecture built entirely on attention.",
		url:           "https://arxiv.org/abs/1706.03762",
		journal:       "NeurIPS",
		year:          2017,
		citationCount: 127543,
	},
	{
		title:         "BERT: Pre-training of Deep Bidirectional Transformers",
		description:   "A pre-trained language model that set the state of the art on many NLP tasks.",
		url:           "https://arxiv.org/abs/1810.04805",
		journal:       "NAACL",
		year:          2019,
		citationCount: 98234,
	},
	{
		title:         "Deep Residual Learning for Image Recognition",
		description:   "ResNet residual connections made very deep networks trainable.",
		url:           "https://arxiv.org/abs/1512.03385",
		journal:       "CVPR",
		year:          2016,
		citationCount: 156789,
	},
	{
		title:         "Generative Adversarial Networks",
		description:   "The GAN framework that laid the groundwork for generative AI.",
		url:           "https://arxiv.org/abs/1406.2661",
		journal:       "NeurIPS",
		year:          2014,
		citationCount: 89312,
	},
	{
		title:         "ImageNet Classification with Deep CNNs",
		description:   "AlexNet, the network that started the deep learning revolution.",
		url:           "https://proceedings.neurips.cc/paper/2012/file/c399862d3b9d6b76c8436e924a68c45b-Paper.pdf",
		journal:       "NeurIPS",
		year:          2012,
		citationCount: 134156,
	},
}

var seedDatasets = []seedDataset{
	{
		title:       "ImageNet",
		description: "Large-scale hierarchical image database organized by WordNet synsets.",
		url:         "https://www.image-net.org/",
		publisher:   "Stanford Vision Lab",
		year:        2009,
		dataSize:    "14M images",
		format:      "JPEG",
	},
	{
		title:       "SQuAD: Stanford Question Answering Dataset",
		description: "Reading comprehension questions posed on Wikipedia articles.",
		url:         "https://rajpurkar.github.io/SQuAD-explorer/",
		publisher:   "Stanford NLP Group",
		year:        2016,
		dataSize:    "100K+ question-answer pairs",
		format:      "JSON",
	},
	{
		title:       "Microsoft COCO: Common Objects in Context",
		description: "Object detection, segmentation and captioning images.",
		url:         "https://cocodataset.org/",
		publisher:   "Microsoft",
		year:        2014,
		dataSize:    "330K images",
		format:      "JPEG, JSON",
	},
}
